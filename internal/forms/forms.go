// Package forms validates terminal input before it is sent to the backend.
package forms

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	skillswapsdk "skillswap/sdk/go"
)

// ValidationError maps a field's json name to what is wrong with it.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(fmt.Sprintf("register notblank: %v", err))
	}
	return v
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Validate checks f against its struct tags.
func Validate(f any) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{Errors: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Errors[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}

// ParseTags splits a comma separated list, dropping blanks.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

type TaskForm struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description" validate:"notblank,max=2000"`
	Tags        string `json:"tags"`
	Location    string `json:"location" validate:"max=200"`
	Time        string `json:"time" validate:"max=200"`
}

// Draft validates the form and returns the request body.
func (f TaskForm) Draft() (skillswapsdk.TaskDraft, error) {
	if err := Validate(f); err != nil {
		return skillswapsdk.TaskDraft{}, err
	}
	return skillswapsdk.TaskDraft{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Tags:        ParseTags(f.Tags),
		Location:    strings.TrimSpace(f.Location),
		Time:        strings.TrimSpace(f.Time),
	}, nil
}

type RatingForm struct {
	ToUserID string `json:"to_user_id" validate:"notblank"`
	TaskID   string `json:"task_id" validate:"notblank"`
	Rating   int    `json:"rating" validate:"min=1,max=5"`
	Comment  string `json:"comment" validate:"omitempty,min=3,max=500"`
}

func (f RatingForm) Draft() (skillswapsdk.RatingDraft, error) {
	f.Comment = strings.TrimSpace(f.Comment)
	if err := Validate(f); err != nil {
		return skillswapsdk.RatingDraft{}, err
	}
	return skillswapsdk.RatingDraft{
		ToUserID: strings.TrimSpace(f.ToUserID),
		TaskID:   strings.TrimSpace(f.TaskID),
		Rating:   f.Rating,
		Comment:  f.Comment,
	}, nil
}

type ReportForm struct {
	ToUserID string `json:"to_user_id" validate:"notblank"`
	TaskID   string `json:"task_id"`
	Reason   string `json:"reason" validate:"notblank,max=1000"`
}

func (f ReportForm) Draft() (skillswapsdk.ReportDraft, error) {
	if err := Validate(f); err != nil {
		return skillswapsdk.ReportDraft{}, err
	}
	return skillswapsdk.ReportDraft{
		ToUserID: strings.TrimSpace(f.ToUserID),
		TaskID:   strings.TrimSpace(f.TaskID),
		Reason:   strings.TrimSpace(f.Reason),
	}, nil
}

// FlagForm is the moderation reason for a rating.
type FlagForm struct {
	RatingID string `json:"rating_id" validate:"notblank"`
	Reason   string `json:"flag_reason" validate:"min=10,max=500"`
}

func (f FlagForm) Check() (FlagForm, error) {
	f.RatingID = strings.TrimSpace(f.RatingID)
	f.Reason = strings.TrimSpace(f.Reason)
	if err := Validate(f); err != nil {
		return FlagForm{}, err
	}
	return f, nil
}

// SignupForm creates the caller's profile.
type SignupForm struct {
	FullName string `json:"full_name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Skill    string `json:"skill" validate:"max=100"`
	Bio      string `json:"bio" validate:"max=1000"`
}

func (f SignupForm) User() (skillswapsdk.NewUser, error) {
	f.Email = strings.TrimSpace(f.Email)
	if err := Validate(f); err != nil {
		return skillswapsdk.NewUser{}, err
	}
	return skillswapsdk.NewUser{
		FullName: strings.TrimSpace(f.FullName),
		Email:    f.Email,
		Skill:    strings.TrimSpace(f.Skill),
		Bio:      strings.TrimSpace(f.Bio),
	}, nil
}

// ProfileForm is a partial profile; nil fields are not sent.
type ProfileForm struct {
	FullName *string `json:"full_name" validate:"omitnil,notblank,max=100"`
	Skill    *string `json:"skill" validate:"omitnil,max=100"`
	Bio      *string `json:"bio" validate:"omitnil,max=1000"`
}

var errEmptyProfile = &ValidationError{Errors: map[string]string{"profile": "set at least one of full_name, skill, bio"}}

func (f ProfileForm) Update() (skillswapsdk.ProfileUpdate, error) {
	if f.FullName == nil && f.Skill == nil && f.Bio == nil {
		return skillswapsdk.ProfileUpdate{}, errEmptyProfile
	}
	if err := Validate(f); err != nil {
		return skillswapsdk.ProfileUpdate{}, err
	}
	return skillswapsdk.ProfileUpdate{FullName: f.FullName, Skill: f.Skill, Bio: f.Bio}, nil
}
