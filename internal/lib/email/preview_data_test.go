package email

// PreviewData holds sample data for every template, used to render
// previews and to check that each template executes.
var PreviewData = map[Template]any{
	TemplateWelcome: WelcomeData{FirstName: "Awa"},
	TemplateContactConfirmation: ContactConfirmationData{
		FirstName: "Awa",
		Subject:   "Inscription en master",
	},
	TemplateAdminNotification: AdminNotificationData{
		Kind:  NotifyNewContact,
		Title: NotifyNewContact.Title(),
		Fields: []Field{
			{Label: "De", Value: "Awa Diallo"},
			{Label: "Sujet", Value: "Inscription en master"},
		},
		RecordID: 12,
		SentAt:   "14/03/2026 10:00",
	},
	TemplateApplicationConfirmation: ApplicationConfirmationData{
		FirstName: "Awa",
		School:    "École d'ingénieurs",
		Program:   "Informatique",
	},
	TemplateApplicationStatus: ApplicationStatusData{
		FirstName: "Awa",
		Program:   "Informatique",
		Status:    "acceptée",
	},
	TemplateDocumentReady: DocumentReadyData{
		FirstName:    "Awa",
		DocumentType: "Relevé de notes",
		DocumentID:   4,
	},
	TemplatePaymentReceipt: PaymentReceiptData{
		FirstName:     "Awa",
		Amount:        "150.00",
		Currency:      "EUR",
		PaymentType:   "Frais de dossier",
		TransactionID: "TXN_M5D4RUO0_1A2B3C4D",
		Date:          "14/03/2026",
	},
}
