package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/luke-griggs/civiq-landing/internal/optin"
)

// Opt-in form wiring shared with the handler and opt-in.js.
const (
	OptInPath     = PrivacyPolicyPath + "/opt-in"
	OptInAnchor   = "sms-opt-in"
	PhoneField    = "phone"
	ConsentField  = "consent"
	ConsentValue  = "yes"
	PhoneExample  = "(555) 123-4567"
	optInInputCls = "w-full max-w-sm px-4 py-2.5 rounded-lg border border-stone-300 bg-white text-stone-900 text-sm placeholder-stone-400 focus:outline-none focus:ring-2 focus:ring-emerald-500/30 focus:border-emerald-500 transition-all"
)

// OptInWidget renders the SMS opt-in widget for form's current state.
func OptInWidget(form *optin.Form) g.Node {
	return Div(
		ID(OptInAnchor),
		g.Attr("data-optin-state", form.State().String()),
		Class("mt-10 p-6 sm:p-8 rounded-2xl border border-emerald-200 bg-emerald-50/50"),
		H3(Class("text-lg font-semibold text-stone-900 mb-1"), g.Text("SMS Notifications Opt-In")),
		P(
			Class("text-sm text-stone-500 mb-5 leading-relaxed"),
			g.Text("Enter your phone number below to receive status updates about your reported issues via text message. Message and data rates may apply."),
		),
		g.If(form.State() == optin.Confirmed, optInConfirmation(form.ConfirmedPhone())),
		g.If(form.State() == optin.Editing, optInForm(form)),
	)
}

func optInConfirmation(phone string) g.Node {
	return Div(
		Class("flex items-center gap-3 p-4 rounded-xl bg-emerald-100 border border-emerald-200 fade-up"),
		g.Attr("role", "status"),
		Div(
			Class("w-8 h-8 rounded-full bg-emerald-600 flex items-center justify-center flex-shrink-0 text-white"),
			Icon("lucide--check size-4", ""),
		),
		Div(
			P(Class("text-sm font-medium text-emerald-900"), g.Text("You're signed up!")),
			P(Class("text-xs text-emerald-700"), g.Text("You'll receive SMS updates at "+phone+".")),
		),
	)
}

func optInForm(form *optin.Form) g.Node {
	return g.El("form",
		Method("post"),
		Action(OptInPath+"#"+OptInAnchor),
		g.Attr("data-optin-form", ""),
		Class("space-y-4"),
		Div(
			Label(
				g.Attr("for", PhoneField),
				Class("block text-sm font-medium text-stone-700 mb-1.5"),
				g.Text("Phone Number"),
			),
			Input(
				ID(PhoneField),
				Name(PhoneField),
				Type("tel"),
				Placeholder(PhoneExample),
				Value(form.PhoneText()),
				g.Attr("autocomplete", "tel"),
				g.Attr("data-optin-phone", ""),
				Class(optInInputCls),
			),
		),
		Label(
			Class("flex items-start gap-3 cursor-pointer group"),
			Input(
				Type("checkbox"),
				Name(ConsentField),
				Value(ConsentValue),
				g.Attr("data-optin-consent", ""),
				g.If(form.Consented(), Checked()),
				Class("mt-1 w-5 h-5 rounded border-2 border-stone-300 accent-emerald-600"),
			),
			Span(
				Class("text-sm text-stone-600 leading-relaxed"),
				g.Text(optin.ConsentStatement+" View our "),
				A(Href(TermsPath), Class(linkClass), g.Text("Terms & Conditions")),
				g.Text(" for more details."),
			),
		),
		Button(
			Type("submit"),
			g.Attr("data-optin-submit", ""),
			g.If(form.SubmitDisabled(), Disabled()),
			Class("px-5 py-2.5 bg-emerald-700 text-white text-sm font-medium rounded-lg hover:bg-emerald-800 disabled:opacity-40 disabled:cursor-not-allowed transition-colors duration-200 cursor-pointer"),
			g.Text("Sign Up for SMS Updates"),
		),
	)
}
