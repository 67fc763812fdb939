// Package optin holds the SMS opt-in widget state machine.
//
// A Form starts in Editing with an empty phone and no consent. AttemptSubmit
// moves it to Confirmed only when the phone text is non-empty and consent is
// given. Confirmed is terminal: a new Form is needed to edit again.
package optin

// State is the widget's display state.
type State int

const (
	// Editing shows the phone input, consent checkbox and submit button.
	Editing State = iota
	// Confirmed replaces the form with a confirmation message.
	Confirmed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Confirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Form is one instance of the opt-in widget. It is owned by a single render
// and is not safe for concurrent use.
type Form struct {
	phoneText      string
	consented      bool
	submitted      bool
	confirmedPhone string
}

// NewForm returns a form in its initial Editing state.
func NewForm() *Form {
	return &Form{}
}

// SetPhoneText replaces the phone text. Any string is accepted.
func (f *Form) SetPhoneText(value string) {
	f.phoneText = value
}

// SetConsented replaces the consent flag.
func (f *Form) SetConsented(value bool) {
	f.consented = value
}

// PhoneText returns the current phone text.
func (f *Form) PhoneText() string {
	return f.phoneText
}

// Consented returns the current consent flag.
func (f *Form) Consented() bool {
	return f.consented
}

// CanSubmit is the guard for the Editing to Confirmed transition.
func (f *Form) CanSubmit() bool {
	return f.phoneText != "" && f.consented
}

// SubmitDisabled reports whether the submit control must be disabled.
func (f *Form) SubmitDisabled() bool {
	return !f.CanSubmit()
}

// AttemptSubmit confirms the form when the guard holds and reports whether a
// transition happened. A failed guard or an already confirmed form is a
// silent no-op.
func (f *Form) AttemptSubmit() bool {
	if f.submitted || !f.CanSubmit() {
		return false
	}
	f.submitted = true
	f.confirmedPhone = f.phoneText
	return true
}

// State returns Editing or Confirmed.
func (f *Form) State() State {
	if f.submitted {
		return Confirmed
	}
	return Editing
}

// Submitted reports whether the form reached Confirmed.
func (f *Form) Submitted() bool {
	return f.submitted
}

// ConfirmedPhone returns the phone text captured by the successful
// transition, or "" while Editing.
func (f *Form) ConfirmedPhone() string {
	return f.confirmedPhone
}
