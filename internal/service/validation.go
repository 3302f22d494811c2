package service

import (
	"errors"
	"fmt"
	"strings"

	"irportal/internal/config"
	"irportal/internal/domain"
	"irportal/internal/domain/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Every create and update is validated here, before any repository call,
// so the relational and key/value backends can never disagree on what
// they accept.

var (
	documentTypeRule = validation.By(func(value interface{}) error {
		value, _ = validation.Indirect(value)
		if t, ok := value.(models.DocumentType); ok && t != "" && !t.Valid() {
			return fmt.Errorf("must be one of %v", models.DocumentTypes)
		}
		return nil
	})

	grievanceStatusRule = validation.By(func(value interface{}) error {
		value, _ = validation.Indirect(value)
		if s, ok := value.(models.GrievanceStatus); ok && s != "" && !s.Valid() {
			return fmt.Errorf("must be one of %v", models.GrievanceStatuses)
		}
		return nil
	})

	priorityRule = validation.In(models.PriorityHigh, models.PriorityNormal, models.PriorityLow).
			Error("must be one of HIGH, NORMAL, LOW")

	promoterCategoryRule = validation.In(models.PromoterIndividual, models.PromoterCompany).
				Error("must be one of Individual, Company")

	// Min and Max treat zero as empty, so the range is checked by hand
	fiscalYearRule = validation.By(func(value interface{}) error {
		value, isNil := validation.Indirect(value)
		if isNil {
			return nil
		}
		if y, ok := value.(int); ok && (y < config.MinFiscalYear || y > config.MaxFiscalYear) {
			return errors.New("must be a four-digit year")
		}
		return nil
	})
)

// nonBlank rejects strings that are present but only whitespace
var nonBlank = validation.By(func(value interface{}) error {
	value, _ = validation.Indirect(value)
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

func validateNewDocument(req *models.NewDocument) error {
	return toValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, config.MaxTitleLength)),
		validation.Field(&req.Type, validation.Required, documentTypeRule),
		validation.Field(&req.Description, validation.RuneLength(0, config.MaxTextLength)),
		validation.Field(&req.FiscalYear, fiscalYearRule),
		validation.Field(&req.FileURL, validation.Required),
		validation.Field(&req.FileName, validation.Required),
		validation.Field(&req.FileSize, validation.Min(int64(0))),
	))
}

func validateDocumentPatch(p *models.DocumentPatch) error {
	return toValidationError(validation.ValidateStruct(p,
		validation.Field(&p.Title, nonBlank, validation.RuneLength(1, config.MaxTitleLength)),
		validation.Field(&p.Type, documentTypeRule),
		validation.Field(&p.Description, validation.RuneLength(0, config.MaxTextLength)),
		validation.Field(&p.FiscalYear, fiscalYearRule),
		validation.Field(&p.FileURL, nonBlank),
		validation.Field(&p.FileName, nonBlank),
		validation.Field(&p.FileSize, validation.Min(int64(0))),
	))
}

// ValidateNewGrievance checks a submission the way CreateGrievance will,
// without modifying req. Upload handlers call it before storing files.
func ValidateNewGrievance(req *models.NewGrievance) error {
	c := *req
	trimAll(&c.Name, &c.Email, &c.Phone, &c.Subject, &c.Description)
	return validateNewGrievance(&c)
}

func validateNewGrievance(req *models.NewGrievance) error {
	return toValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.RuneLength(config.MinNameLength, config.MaxNameLength).
				Error(fmt.Sprintf("must be at least %d characters", config.MinNameLength)),
		),
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Phone,
			validation.Required,
			validation.RuneLength(config.MinPhoneLength, 0).
				Error(fmt.Sprintf("must be at least %d characters", config.MinPhoneLength)),
		),
		validation.Field(&req.Subject,
			validation.Required,
			validation.RuneLength(config.MinSubjectLength, config.MaxTitleLength).
				Error(fmt.Sprintf("must be at least %d characters", config.MinSubjectLength)),
		),
		validation.Field(&req.Description,
			validation.Required,
			validation.RuneLength(config.MinGrievanceDescriptionLength, config.MaxTextLength).
				Error(fmt.Sprintf("must be at least %d characters", config.MinGrievanceDescriptionLength)),
		),
		validation.Field(&req.Attachments,
			validation.Length(0, config.MaxGrievanceAttachments).
				Error(fmt.Sprintf("at most %d attachments are allowed", config.MaxGrievanceAttachments)),
		),
	))
}

func validateGrievancePatch(p *models.GrievancePatch) error {
	return toValidationError(validation.ValidateStruct(p,
		validation.Field(&p.Status, grievanceStatusRule),
		validation.Field(&p.Name,
			nonBlank,
			validation.RuneLength(config.MinNameLength, config.MaxNameLength).
				Error(fmt.Sprintf("must be at least %d characters", config.MinNameLength)),
		),
		validation.Field(&p.Email, nonBlank, is.EmailFormat),
		validation.Field(&p.Phone,
			nonBlank,
			validation.RuneLength(config.MinPhoneLength, 0).
				Error(fmt.Sprintf("must be at least %d characters", config.MinPhoneLength)),
		),
		validation.Field(&p.Subject,
			nonBlank,
			validation.RuneLength(config.MinSubjectLength, config.MaxTitleLength).
				Error(fmt.Sprintf("must be at least %d characters", config.MinSubjectLength)),
		),
		validation.Field(&p.Description,
			nonBlank,
			validation.RuneLength(config.MinGrievanceDescriptionLength, config.MaxTextLength).
				Error(fmt.Sprintf("must be at least %d characters", config.MinGrievanceDescriptionLength)),
		),
	))
}

func validateNewPolicy(req *models.NewPolicy) error {
	return toValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, config.MaxTitleLength)),
		validation.Field(&req.Description, validation.Required, validation.RuneLength(1, config.MaxTextLength)),
		validation.Field(&req.Category, validation.Required),
		validation.Field(&req.FileURL, validation.Required),
		validation.Field(&req.FileName, validation.Required),
		validation.Field(&req.EffectiveDate, validation.Required),
	))
}

func validatePolicyPatch(p *models.PolicyPatch) error {
	return toValidationError(validation.ValidateStruct(p,
		validation.Field(&p.Title, nonBlank, validation.RuneLength(1, config.MaxTitleLength)),
		validation.Field(&p.Description, nonBlank),
		validation.Field(&p.Category, nonBlank),
		validation.Field(&p.FileURL, nonBlank),
		validation.Field(&p.FileName, nonBlank),
	))
}

func validateNewAnnouncement(req *models.NewAnnouncement) error {
	return toValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, config.MaxTitleLength)),
		validation.Field(&req.Description, validation.Required, validation.RuneLength(1, config.MaxTextLength)),
		validation.Field(&req.Priority, priorityRule),
	))
}

func validateAnnouncementPatch(p *models.AnnouncementPatch) error {
	return toValidationError(validation.ValidateStruct(p,
		validation.Field(&p.Title, nonBlank, validation.RuneLength(1, config.MaxTitleLength)),
		validation.Field(&p.Description, nonBlank),
		validation.Field(&p.Priority, priorityRule),
	))
}

func validateNewBoardDirector(req *models.NewBoardDirector) error {
	return toValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(config.MinNameLength, config.MaxNameLength)),
		validation.Field(&req.Designation, validation.Required),
		validation.Field(&req.DIN, validation.Required, is.Digit),
	))
}

func validateBoardDirectorPatch(p *models.BoardDirectorPatch) error {
	return toValidationError(validation.ValidateStruct(p,
		validation.Field(&p.Name, nonBlank, validation.RuneLength(config.MinNameLength, config.MaxNameLength)),
		validation.Field(&p.Designation, nonBlank),
		validation.Field(&p.DIN, nonBlank, is.Digit),
	))
}

func validateNewPromoter(req *models.NewPromoter) error {
	return toValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(config.MinNameLength, config.MaxNameLength)),
		validation.Field(&req.Category, validation.Required, promoterCategoryRule),
	))
}

func validatePromoterPatch(p *models.PromoterPatch) error {
	return toValidationError(validation.ValidateStruct(p,
		validation.Field(&p.Name, nonBlank, validation.RuneLength(config.MinNameLength, config.MaxNameLength)),
		validation.Field(&p.Category, promoterCategoryRule),
	))
}

// toValidationError flattens ozzo field errors into a domain.ValidationError
// that names every offending field.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return fmt.Errorf("validate: %w", internal.InternalError())
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for name, fe := range fieldErrs {
			fields[name] = fe.Error()
		}
		return domain.NewValidationError(fields)
	}

	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

// trimAll trims surrounding whitespace in place
func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// trimPresent trims the optional fields that were supplied
func trimPresent(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}
