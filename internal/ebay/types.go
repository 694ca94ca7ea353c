package ebay

import (
	"bytes"
	"strconv"
)

// Money is a currency value that eBay sends either as a JSON string or a
// number. Null, empty and malformed values decode as 0.
type Money float64

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*m = 0
		return nil
	}
	*m = Money(v)
	return nil
}

// Amount is eBay's {"value": ..., "currency": ...} structure.
type Amount struct {
	Value    Money  `json:"value"`
	Currency string `json:"currency"`
}

// amountValue returns a.Value, or 0 when a is absent.
func amountValue(a *Amount) float64 {
	if a == nil {
		return 0
	}
	return float64(a.Value)
}

// totalResponse covers every search endpoint where only the total is read.
type totalResponse struct {
	Total int64 `json:"total"`
}

// ordersResponse is the Fulfillment API getOrders response.
type ordersResponse struct {
	Total  int64   `json:"total"`
	Orders []order `json:"orders"`
}

type order struct {
	OrderID            string     `json:"orderId"`
	OrderPaymentStatus string     `json:"orderPaymentStatus"`
	LineItems          []lineItem `json:"lineItems"`
}

type lineItem struct {
	LineItemID                      string                   `json:"lineItemId"`
	LineItemFulfillmentInstructions *fulfillmentInstructions `json:"lineItemFulfillmentInstructions"`
}

type fulfillmentInstructions struct {
	ShipByDate string `json:"shipByDate"`
}

// fundsSummaryResponse is the Finances API seller_funds_summary response.
type fundsSummaryResponse struct {
	AvailableFunds  *Amount `json:"availableFunds"`
	FundsOnHold     *Amount `json:"fundsOnHold"`
	ProcessingFunds *Amount `json:"processingFunds"`
	TotalFunds      *Amount `json:"totalFunds"`
}

// transactionSummaryResponse is the Finances API transaction_summary
// response.
type transactionSummaryResponse struct {
	TransactionSummaries []transactionSummary `json:"transactionSummaries"`
}

type transactionSummary struct {
	TransactionType string  `json:"transactionType"`
	TotalAmount     *Amount `json:"totalAmount"`
}

// Transaction types.
const (
	transactionSale   = "SALE"
	transactionRefund = "REFUND"
)

// Order payment status that counts as paid.
const paymentStatusPaid = "PAID"
