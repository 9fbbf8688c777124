package template

import "support-router/internal/model"

// Defaults returns the built-in templates for the default ZERO_COST intents.
func Defaults() map[model.Intent]string {
	return map[model.Intent]string{
		model.IntentCheckPaymentMethods: "We accept Visa, Mastercard, American Express, PayPal and bank transfer. " +
			"You can choose your payment method at checkout.",
		model.IntentCheckRefundPolicy: "You can request a refund within 30 days of delivery for unused items in their original packaging. " +
			"Refunds are issued to the original payment method within 5-10 business days.",
		model.IntentCheckCancellationFee: "Orders cancelled before they ship are free of charge. " +
			"Once an order has shipped, a return shipping fee may apply.",
		model.IntentDeliveryOptions: "We offer standard (3-5 business days), express (1-2 business days) and in-store pickup. " +
			"Available options are shown at checkout for your address.",
		model.IntentDeliveryPeriod: "Standard delivery takes 3-5 business days and express delivery 1-2 business days " +
			"from the moment your order ships.",
		model.IntentTrackOrder: "You can track your order from the Orders section of your account. " +
			"Select the order and click \"Track package\" to see its current status.",
		model.IntentTrackRefund: "You can follow your refund from the Returns section of your account. " +
			"Refunds usually appear on your statement within 5-10 business days after approval.",
		model.IntentContactCustomerService: "Our customer service team is available Monday to Friday, 9am to 6pm, " +
			"by chat on this site or by email at support@example.com.",
		model.IntentNewsletterSubscription: "You can subscribe or unsubscribe from our newsletter under Account > Communication preferences.",
		model.IntentCheckInvoice: "Your invoices are available under Account > Orders. " +
			"Select an order and click \"View invoice\".",
		model.IntentGetInvoice: "To download an invoice, open Account > Orders, select the order and click \"Download invoice\" (PDF).",
		model.IntentRecoverPassword: "Click \"Forgot password\" on the sign-in page and enter your email address. " +
			"We will send you a link to set a new password.",
		model.IntentReview: "Thank you for taking the time to share your feedback! " +
			"You can leave a review from the product page or from your order history.",
	}
}
