package submissions

import "errors"

// ErrDuplicateSubmission is returned when the submitter already has a
// submission for this questionnaire and dedup is enabled.
var ErrDuplicateSubmission = errors.New("duplicate submission")
