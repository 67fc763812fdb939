package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/luke-griggs/civiq-landing/internal/content"
	"github.com/luke-griggs/civiq-landing/internal/optin"
)

// PrivacyPolicy renders the privacy policy body followed by the opt-in widget.
func PrivacyPolicy(site *content.Site, form *optin.Form) g.Node {
	support := site.SupportEmail

	sections := []legalSection{
		{"Introduction", []g.Node{
			para(`Civiq ("we," "our," or "us") respects your privacy and is committed to protecting your personal information. This Privacy Policy explains how we collect, use, disclose, and safeguard your information when you use our AI-powered city government operations platform and related services.`),
		}},
		{"Information We Collect", []g.Node{
			lead("We may collect the following types of information:"),
			bullets(
				term("Personal Information:", g.Text("Name, email address, phone number, and mailing address when you contact us, request a demo, or report an issue.")),
				term("Issue Report Data:", g.Text("Details about city service requests, complaints, or issues you report through our platform.")),
				term("Communication Records:", g.Text("Transcripts and recordings of calls handled by our AI agents, SMS messages, and email correspondence.")),
				term("Usage Data:", g.Text("Information about how you interact with our services, including IP address, browser type, and device information.")),
			),
		}},
		{"How We Use Your Information", []g.Node{
			bullets(
				item("To process, triage, and resolve city service requests and issues."),
				item("To send you updates and notifications about reported issues via SMS, email, or phone."),
				item("To coordinate between city departments to resolve your requests."),
				item("To improve our AI agents and overall service quality."),
				item("To comply with legal obligations and government requirements."),
			),
		}},
		{"SMS/Text Messaging", []g.Node{
			lead("If you opt in to receive SMS text messages from Civiq:"),
			bullets(
				item("We will send you messages related to issue status updates, city notifications, and service alerts."),
				item("Message frequency varies based on your reported issues and city activity."),
				item("Message and data rates may apply depending on your mobile carrier and plan."),
				Li(g.Text("You may opt out at any time by replying "), strong("STOP"), g.Text(" to any message.")),
				Li(g.Text("For help, reply "), strong("HELP"), g.Text(" or contact us at "), mailto(support), g.Text(".")),
				item("We will not share your phone number with third parties for marketing purposes."),
			),
		}},
		{"Data Sharing", []g.Node{
			lead("We do not sell your personal information. We may share your data with:"),
			bullets(
				term("Municipal Partners:", g.Text("City government departments necessary to resolve your reported issues.")),
				term("Service Providers:", g.Text("Third-party vendors who help us operate our platform (e.g., cloud hosting, telecommunications).")),
				term("Legal Requirements:", g.Text("When required by law, regulation, or legal process.")),
			),
		}},
		{"Data Security", []g.Node{
			para("We implement industry-standard security measures to protect your personal information, including encryption in transit and at rest, access controls, and regular security audits. However, no method of transmission over the internet is 100% secure."),
		}},
		{"Data Retention", []g.Node{
			para("We retain your personal information for as long as necessary to provide our services and fulfill the purposes described in this policy, or as required by law. Issue report data may be retained in accordance with municipal records retention requirements."),
		}},
		{"Your Rights", []g.Node{
			lead("You have the right to:"),
			bullets(
				item("Access the personal information we hold about you."),
				item("Request correction of inaccurate information."),
				item("Request deletion of your personal information, subject to legal retention requirements."),
				item("Opt out of SMS communications at any time by replying STOP."),
			),
		}},
		{"Contact Us", []g.Node{
			P(g.Text("If you have questions about this Privacy Policy or our data practices, please contact us at "), mailto(support), g.Text(".")),
		}},
	}

	return legalPage(site, "Privacy Policy", sections, OptInWidget(form))
}

// PrivacyPolicyPage renders the full privacy policy document.
func PrivacyPolicyPage(site *content.Site, form *optin.Form) g.Node {
	return Layout(
		PageConfig{
			Title:       "Privacy Policy - Civiq",
			Description: "How Civiq collects, uses, and protects your information, and how to opt in to SMS notifications.",
		},
		Div(Class("min-h-screen bg-white"), PrivacyPolicy(site, form)),
	)
}
