package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/luke-griggs/civiq-landing/internal/content"
)

func Terms(site *content.Site) g.Node {
	support := site.SupportEmail
	privacyLink := A(Href(PrivacyPolicyPath), Class(linkClass), g.Text("Privacy Policy"))

	sections := []legalSection{
		{"Acceptance of Terms", []g.Node{
			para(`By accessing or using Civiq's services, including our AI-powered city government operations platform, website, and SMS notification service (collectively, the "Services"), you agree to be bound by these Terms and Conditions. If you do not agree to these terms, please do not use our Services.`),
		}},
		{"Description of Services", []g.Node{
			para("Civiq provides AI-powered agents that assist city governments in managing operations, including but not limited to: receiving and triaging citizen service requests, coordinating between departments, providing status updates, and delivering notifications via phone, SMS, and email."),
		}},
		{"SMS Messaging Terms", []g.Node{
			lead("By opting in to Civiq's SMS notification service, you agree to the following:"),
			bullets(
				term("Program Name:", g.Text("Civiq City Notifications")),
				term("Program Description:", g.Text("You will receive text messages with updates about city service requests you have reported or subscribed to, general city notifications, and service alerts.")),
				term("Message Frequency:", g.Text("Message frequency varies. You may receive messages related to issue status changes, resolution updates, and city-wide notifications.")),
				term("Message and Data Rates:", g.Text("Message and data rates may apply. Please consult your mobile carrier for details about your text messaging plan.")),
				term("Opt-Out:", g.Text("You may opt out of SMS messages at any time by replying "), Strong(g.Text("STOP")), g.Text(" to any message. You will receive a one-time confirmation message, and no further messages will be sent unless you re-subscribe.")),
				term("Help:", g.Text("For support, reply "), Strong(g.Text("HELP")), g.Text(" to any message or contact "), mailto(support), g.Text(".")),
				term("Supported Carriers:", g.Text("Compatible with major US carriers including AT&T, Verizon, T-Mobile, and Sprint. Coverage is not available in all areas.")),
			),
		}},
		{"User Consent", []g.Node{
			para("There are two ways in which users consent to receiving messages from Civiq:"),
			Ol(
				Class("list-decimal pl-5 space-y-2 mt-3"),
				item("By explicitly stating so while on a call — users will be asked if they'd like to receive a text message containing additional information and status updates about their reported issue."),
				Li(
					g.Text("By registering their phone number on our website and checking the consent box on our "),
					privacyLink,
					g.Text(" page, thereby explicitly opting in to receive SMS notifications."),
				),
			),
		}},
		{"Use of Services", []g.Node{
			lead("You agree to:"),
			bullets(
				item("Provide accurate information when reporting issues or creating an account."),
				item("Use the Services only for lawful purposes related to city government operations and citizen services."),
				item("Not attempt to interfere with, disrupt, or compromise the integrity of our AI agents or platform."),
				item("Not misrepresent your identity or affiliation when using the Services."),
			),
		}},
		{"AI-Powered Services", []g.Node{
			para("Our Services utilize artificial intelligence to process and respond to requests. While we strive for accuracy and reliability, AI-generated responses may not always be perfect. Critical or emergency situations should be directed to appropriate emergency services (911). Civiq is not a replacement for emergency services."),
		}},
		{"Intellectual Property", []g.Node{
			para("All content, features, and functionality of the Civiq platform, including but not limited to software, text, graphics, logos, and AI models, are the exclusive property of Civiq and are protected by intellectual property laws."),
		}},
		{"Limitation of Liability", []g.Node{
			para("To the maximum extent permitted by law, Civiq shall not be liable for any indirect, incidental, special, consequential, or punitive damages, including but not limited to loss of data, service interruptions, or any damages arising from the use or inability to use our Services."),
		}},
		{"Privacy", []g.Node{
			P(g.Text("Your use of our Services is also governed by our "), privacyLink, g.Text(", which is incorporated into these Terms by reference.")),
		}},
		{"Changes to Terms", []g.Node{
			para("We reserve the right to modify these Terms at any time. Changes will be effective upon posting to our website. Your continued use of the Services after changes constitutes acceptance of the revised Terms."),
		}},
		{"Governing Law", []g.Node{
			para("These Terms shall be governed by and construed in accordance with the laws of the State of Illinois, without regard to conflict of law principles."),
		}},
		{"Contact", []g.Node{
			P(g.Text("For questions about these Terms, contact us at "), mailto(support), g.Text(".")),
		}},
	}

	return legalPage(site, "Terms & Conditions", sections)
}

func TermsPage(site *content.Site) g.Node {
	return Layout(
		PageConfig{
			Title:       "Terms & Conditions - Civiq",
			Description: "Terms governing use of Civiq services, including the Civiq City Notifications SMS program.",
		},
		Div(Class("min-h-screen bg-white"), Terms(site)),
	)
}
