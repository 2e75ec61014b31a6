package dto

// IntakeRequest is the contact-form payload posted by the page script.
// The field names mirror the form's named inputs.
type IntakeRequest struct {
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Message      string            `json:"message"`
	Tags         []string          `json:"tags,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
}

// IntakeResponse is the sanitized status handed back to the browser.
// StatusMessage is display-ready; the page writes it into the status
// area as-is and clears the form only when OK is true.
type IntakeResponse struct {
	OK            bool   `json:"ok"`
	StatusMessage string `json:"status_message"`
	SubmissionID  string `json:"submission_id,omitempty"`
}
