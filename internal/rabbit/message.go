package rabbit

import (
	"encoding/json"
	"errors"
	"fmt"

	"confreg/internal/model"
)

var ErrMalformedMessage = errors.New("malformed enrollment change message")

// EnrollmentChanged asks the reconciler to re-derive one parent's counter.
type EnrollmentChanged struct {
	Kind     model.ParentKind `json:"kind"`
	ParentID int64            `json:"parent_id"`
}

func decodeEnrollmentChanged(body []byte) (EnrollmentChanged, error) {
	var msg EnrollmentChanged
	if err := json.Unmarshal(body, &msg); err != nil {
		return EnrollmentChanged{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	kind, err := model.ParseParentKind(string(msg.Kind))
	if err != nil {
		return EnrollmentChanged{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if msg.ParentID <= 0 {
		return EnrollmentChanged{}, fmt.Errorf("%w: parent_id %d", ErrMalformedMessage, msg.ParentID)
	}
	msg.Kind = kind
	return msg, nil
}
