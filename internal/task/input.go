package task

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("category", validateCategory); err != nil {
		panic(fmt.Sprintf("failed to register category validator: %v", err))
	}
}

func validateCategory(fl validator.FieldLevel) bool {
	return Category(fl.Field().String()).Valid()
}

// Input carries the mutable fields of a task for create and update.
type Input struct {
	Title        string   `validate:"required"`
	Description  string
	Category     Category `validate:"category"`
	Reminder     bool
	ReminderTime *time.Time
}

// ValidationError reports which input fields were rejected.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid task: " + strings.Join(e.Fields, ", ")
}

// Sanitize trims whitespace and drops control characters from the free-text
// fields, so user input never reaches the renderer raw.
func (in *Input) Sanitize() {
	in.Title = sanitizeText(in.Title)
	in.Description = sanitizeText(in.Description)
}

// Validate checks the input against the entity rules. A reminder time on an
// input with Reminder false is not an error; it is ignored downstream.
func (in Input) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		switch fe.Field() {
		case "Title":
			out.Fields = append(out.Fields, "title is required")
		case "Category":
			out.Fields = append(out.Fields, fmt.Sprintf("category %q is not one of the known categories", in.Category))
		default:
			out.Fields = append(out.Fields, fe.Field())
		}
	}
	return out
}

func sanitizeText(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
