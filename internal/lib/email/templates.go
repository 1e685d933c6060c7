package email

// Template names an embedded template; the file templates/<name>.html
// defines it.
type Template string

const (
	TemplateWelcome                 Template = "welcome"
	TemplateContactConfirmation     Template = "contact_confirmation"
	TemplateAdminNotification       Template = "admin_notification"
	TemplateApplicationConfirmation Template = "application_confirmation"
	TemplateApplicationStatus       Template = "application_status"
	TemplateDocumentReady           Template = "document_ready"
	TemplatePaymentReceipt          Template = "payment_receipt"
)

// NotificationKind identifies an admin notification.
type NotificationKind string

const (
	NotifyNewContact         NotificationKind = "new_contact"
	NotifyNewJobOffer        NotificationKind = "new_job_offer"
	NotifyNewApplication     NotificationKind = "new_application"
	NotifyNewDocumentRequest NotificationKind = "new_document_request"
	NotifyNewPayment         NotificationKind = "new_payment"
)

var notificationTitles = map[NotificationKind]string{
	NotifyNewContact:         "Nouveau message de contact",
	NotifyNewJobOffer:        "Nouvelle offre d'emploi ou de stage",
	NotifyNewApplication:     "Nouvelle candidature",
	NotifyNewDocumentRequest: "Nouvelle demande de document",
	NotifyNewPayment:         "Nouveau paiement",
}

// Title is the subject line of the notification.
func (k NotificationKind) Title() string {
	if t, ok := notificationTitles[k]; ok {
		return t
	}
	return "Nouvelle notification"
}
