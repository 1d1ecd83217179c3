package controllers

import (
	"errors"

	"moodbite/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request bodies.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return v.RegisterValidation("moodlabel", func(fl validator.FieldLevel) bool {
		return models.MoodLabel(fl.Field().String()).Valid()
	})
}
