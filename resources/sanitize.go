package resources

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/resourcebox-go/apperror"
)

// msgOneFieldRequired rejects payloads whose data array is missing or empty.
const msgOneFieldRequired = "One field required"

// Sanitize validates and normalizes an untrusted resource payload. A
// caller-supplied id is reduced to its allow-listed characters; an absent
// (or fully stripped) id is replaced with a fresh random one. Data is
// normalized by SanitizeData. Both timestamps are stamped with the current
// time. Pure with respect to storage: it only produces or rejects a value.
func Sanitize(raw RawResource, maxCellLength, maxArrayLength int) (*Resource, error) {
	id := SanitizeID(raw.ID)
	if id == "" {
		id = uuid.NewString()
	}

	data, err := SanitizeData(raw.Data, maxCellLength, maxArrayLength)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	return &Resource{
		ID:       id,
		Data:     data,
		Created:  now,
		Modified: now,
	}, nil
}

// SanitizeData normalizes a resource's data array: rejects a missing or
// empty array, silently drops cells beyond maxArrayLength, truncates string
// cells to maxCellLength runes, passes numbers through unchanged and
// coerces any other type to the empty string.
func SanitizeData(data []any, maxCellLength, maxArrayLength int) ([]any, error) {
	if len(data) == 0 {
		return nil, apperror.NewValidationError(msgOneFieldRequired, nil)
	}
	if len(data) > maxArrayLength {
		data = data[:maxArrayLength]
	}

	out := make([]any, len(data))
	for i, cell := range data {
		switch v := cell.(type) {
		case string:
			out[i] = truncate(v, maxCellLength)
		case float64:
			// encoding/json decodes every JSON number as float64
			out[i] = v
		case json.Number:
			out[i] = v
		case int:
			out[i] = v
		case int64:
			out[i] = v
		default:
			out[i] = ""
		}
	}
	return out, nil
}

// SanitizeID keeps only characters from the identifier allow-list
// [A-Za-z0-9_-]. Anything an underlying query layer could interpret
// structurally is stripped rather than escaped; combined with parameterized
// queries this makes identifier injection impossible by construction.
func SanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return -1
		}
	}, id)
}

// truncate caps s at max runes, never splitting a multi-byte character.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
