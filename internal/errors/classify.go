package errors

import (
	"errors"
	"net/http"
)

// Classification is the HTTP outcome for an error that reached the terminal
// handler. Detail, when set, is safe to show in every environment.
type Classification struct {
	Status  int
	Message string
	Detail  string
}

func Classify(err error) Classification {
	if se, ok := IsStorageError(err); ok {
		return classifyStorage(se)
	}

	if _, ok := IsMalformedRequestError(err); ok {
		return Classification{
			Status:  http.StatusBadRequest,
			Message: "Invalid JSON format",
			Detail:  "Request body must be valid JSON",
		}
	}

	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return Classification{Status: http.StatusRequestEntityTooLarge, Message: "Request body too large"}
	}

	if nfe, ok := IsNotFoundError(err); ok {
		return Classification{Status: http.StatusNotFound, Message: nfe.Message}
	}

	if IsClientError(err) {
		return Classification{Status: http.StatusBadRequest, Message: err.Error()}
	}

	return Classification{Status: http.StatusInternalServerError, Message: "Internal Server Error"}
}

func classifyStorage(se *StorageError) Classification {
	switch se.Kind {
	case StorageUniqueViolation:
		return Classification{Status: http.StatusConflict, Message: "Resource already exists"}
	case StorageForeignKeyViolation:
		return Classification{Status: http.StatusBadRequest, Message: "Invalid reference"}
	case StorageNotNullViolation:
		return Classification{Status: http.StatusBadRequest, Message: "Required field missing"}
	case StorageInvalidIdentifier:
		return Classification{Status: http.StatusBadRequest, Message: "Invalid ID format"}
	default:
		return Classification{Status: http.StatusInternalServerError, Message: "Database error"}
	}
}
