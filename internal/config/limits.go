package config

// Grievance form minimums. These are part of the public form contract
// and must not drift between the site and the API.
const (
	MinNameLength                 = 2
	MinPhoneLength                = 10
	MinSubjectLength              = 5
	MinGrievanceDescriptionLength = 20
)

const (
	// MaxTitleLength fits VARCHAR(255) columns.
	MaxTitleLength = 255

	// MaxNameLength covers person and company names.
	MaxNameLength = 255

	// MaxTextLength bounds free-text fields (descriptions, resolutions).
	MaxTextLength = 10000

	// MinFiscalYear and MaxFiscalYear keep fiscal years to four digits.
	MinFiscalYear = 1000
	MaxFiscalYear = 9999
)

// Upload limits
const (
	// MaxGrievanceAttachments is the number of files a grievance may carry.
	MaxGrievanceAttachments = 5

	// MaxUploadFileSize is the per-file ceiling (10 MB).
	MaxUploadFileSize = 10 << 20

	// MaxMultipartMemory is how much of a multipart body is buffered in
	// memory before spilling to temp files.
	MaxMultipartMemory = 32 << 20
)

// AllowedUploadExtensions are the accepted attachment and document types.
var AllowedUploadExtensions = []string{"pdf", "jpg", "jpeg", "png", "doc", "docx"}
