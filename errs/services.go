package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

// Blob storage Errors
var (
	ErrBlobUpload = errors.New("blob upload failed")
)

func NewConfigMissingError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Required configuration %s is not set", varName),
		Field:      varName,
	}
}

func NewConfigInvalidError(varName, value string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("Unsupported value %q for %s", value, varName),
		Field:      varName,
	}
}

func NewBlobUploadError(backend string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrBlobUpload,
		Details:    fmt.Sprintf("Storage upload error (%s)", backend),
		Cause:      cause,
	}
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing) || errors.Is(err, ErrConfigInvalid)
}

func IsBlobUploadError(err error) bool {
	return errors.Is(err, ErrBlobUpload)
}
