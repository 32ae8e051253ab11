package server

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/model"
	"github.com/ecfilm/catalog-api/internal/service"
)

// Ecuadorian numbers dominate the catalog, so bare national numbers parse
// against EC; anything with a +prefix validates against its own region.
const defaultPhoneRegion = "EC"

func validPhone(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	num, err := phonenumbers.Parse(s, defaultPhoneRegion)
	if err != nil {
		return fmt.Errorf("invalid phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return fmt.Errorf("invalid phone number")
	}
	return nil
}

func validProvince(value any) error {
	s, _ := value.(string)
	if !model.ValidProvince(s) {
		return fmt.Errorf("unknown province")
	}
	return nil
}

func validateRegister(in service.RegisterInput) error {
	err := validation.Errors{
		"name":     validation.Validate(in.Username, validation.Required, validation.Length(3, 60)),
		"email":    validation.Validate(in.Email, validation.Required, is.Email),
		"password": validation.Validate(in.Password, validation.Required, validation.Length(8, 72)),
	}.Filter()

	if err != nil {
		return auth.ErrInvalidData
	}
	return nil
}

func validateLogin(in service.LoginInput) error {
	err := validation.Errors{
		"email":    validation.Validate(in.Email, validation.Required, is.Email),
		"password": validation.Validate(in.Password, validation.Required),
	}.Filter()

	if err != nil {
		return auth.ErrInvalidCredentials
	}
	return nil
}

func validateProfile(p *model.UserProfile) error {
	err := validation.Errors{
		"firstName": validation.Validate(p.FirstName, validation.Required, validation.Length(2, 60)),
		"lastName":  validation.Validate(p.LastName, validation.Required, validation.Length(2, 60)),
		"phone":     validation.Validate(p.Phone, validation.By(validPhone)),
	}.Filter()

	if err != nil {
		return auth.ErrInvalidData
	}
	return nil
}

func validateLocation(l *model.Location) error {
	err := validation.Errors{
		"name":        validation.Validate(l.Name, validation.Required, validation.Length(2, 120)),
		"description": validation.Validate(l.Description, validation.Required),
		"province":    validation.Validate(l.Province, validation.Required, validation.By(validProvince)),
		"city":        validation.Validate(l.City, validation.Required),
		"contact":     validation.Validate(l.Contact, validation.By(validPhone)),
	}.Filter()

	if err != nil {
		return auth.ErrInvalidData
	}
	return nil
}

func validateCompany(cmp *model.Company) error {
	err := validation.Errors{
		"company":       validation.Validate(cmp.Company, validation.Required, validation.Length(2, 120)),
		"firstActivity": validation.Validate(cmp.FirstActivity, validation.Required),
		"province":      validation.Validate(cmp.Province, validation.Required, validation.By(validProvince)),
		"city":          validation.Validate(cmp.City, validation.Required),
		"email":         validation.Validate(cmp.Email, validation.Required, is.Email),
		"phone":         validation.Validate(cmp.Phone, validation.Required, validation.By(validPhone)),
		"typeVideo":     validation.Validate(cmp.TypeVideo, validation.In(model.VideoYouTube, model.VideoVimeo)),
		"website":       validation.Validate(cmp.Website, is.URL),
		"urlVideo":      validation.Validate(cmp.URLVideo, is.URL),
	}.Filter()

	if err != nil {
		return auth.ErrInvalidData
	}
	return nil
}

func validateProject(p *model.AudiovisualProject) error {
	err := validation.Errors{
		"name":        validation.Validate(p.Name, validation.Required, validation.Length(2, 160)),
		"director":    validation.Validate(p.Director, validation.Required),
		"producer":    validation.Validate(p.Producer, validation.Required),
		"sinopsis":    validation.Validate(p.Sinopsis, validation.Required, validation.Length(100, 0)),
		"sinopsisEng": validation.Validate(p.SinopsisEng, validation.Required, validation.Length(100, 0)),
		"year":        validation.Validate(p.Year, validation.Required, is.Digit),
	}.Filter()

	if err != nil {
		return auth.ErrInvalidData
	}
	return nil
}
