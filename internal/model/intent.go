package model

import "strings"

// Intent is a customer-support intent label from the fixed 27-way taxonomy.
type Intent string

// IntentUnknown is the label of a prediction that could not be read.
const IntentUnknown Intent = ""

const (
	IntentCancelOrder            Intent = "cancel_order"
	IntentChangeOrder            Intent = "change_order"
	IntentChangeShippingAddress  Intent = "change_shipping_address"
	IntentCheckCancellationFee   Intent = "check_cancellation_fee"
	IntentCheckInvoice           Intent = "check_invoice"
	IntentCheckPaymentMethods    Intent = "check_payment_methods"
	IntentCheckRefundPolicy      Intent = "check_refund_policy"
	IntentComplaint              Intent = "complaint"
	IntentContactCustomerService Intent = "contact_customer_service"
	IntentContactHumanAgent      Intent = "contact_human_agent"
	IntentCreateAccount          Intent = "create_account"
	IntentDeleteAccount          Intent = "delete_account"
	IntentDeliveryOptions        Intent = "delivery_options"
	IntentDeliveryPeriod         Intent = "delivery_period"
	IntentEditAccount            Intent = "edit_account"
	IntentGetInvoice             Intent = "get_invoice"
	IntentGetRefund              Intent = "get_refund"
	IntentNewsletterSubscription Intent = "newsletter_subscription"
	IntentPaymentIssue           Intent = "payment_issue"
	IntentPlaceOrder             Intent = "place_order"
	IntentRecoverPassword        Intent = "recover_password"
	IntentRegistrationProblems   Intent = "registration_problems"
	IntentReview                 Intent = "review"
	IntentSetUpShippingAddress   Intent = "set_up_shipping_address"
	IntentSwitchAccount          Intent = "switch_account"
	IntentTrackOrder             Intent = "track_order"
	IntentTrackRefund            Intent = "track_refund"
)

var allIntents = []Intent{
	IntentCancelOrder,
	IntentChangeOrder,
	IntentChangeShippingAddress,
	IntentCheckCancellationFee,
	IntentCheckInvoice,
	IntentCheckPaymentMethods,
	IntentCheckRefundPolicy,
	IntentComplaint,
	IntentContactCustomerService,
	IntentContactHumanAgent,
	IntentCreateAccount,
	IntentDeleteAccount,
	IntentDeliveryOptions,
	IntentDeliveryPeriod,
	IntentEditAccount,
	IntentGetInvoice,
	IntentGetRefund,
	IntentNewsletterSubscription,
	IntentPaymentIssue,
	IntentPlaceOrder,
	IntentRecoverPassword,
	IntentRegistrationProblems,
	IntentReview,
	IntentSetUpShippingAddress,
	IntentSwitchAccount,
	IntentTrackOrder,
	IntentTrackRefund,
}

var knownIntents = func() map[Intent]struct{} {
	m := make(map[Intent]struct{}, len(allIntents))
	for _, in := range allIntents {
		m[in] = struct{}{}
	}
	return m
}()

// AllIntents returns the taxonomy in a stable order. The slice is a copy.
func AllIntents() []Intent {
	out := make([]Intent, len(allIntents))
	copy(out, allIntents)
	return out
}

// Known reports whether i belongs to the taxonomy.
func (i Intent) Known() bool {
	_, ok := knownIntents[i]
	return ok
}

// NormalizeIntent lowercases and trims a raw classifier label.
// Labels like "TRACK_ORDER" or " Track_Order " map to "track_order".
func NormalizeIntent(raw string) Intent {
	return Intent(strings.ToLower(strings.TrimSpace(raw)))
}
