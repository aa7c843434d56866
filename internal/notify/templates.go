package notify

type Format string

const (
	TextFormat     Format = "text"
	CurrencyFormat Format = "currency"
	DateTimeFormat Format = "datetime"
	PhoneFormat    Format = "phone"
)

const (
	TemplateMoneyIn               = "money_in"
	TemplateMoneyOut              = "money_out"
	TemplateOrderPayment          = "order_payment"
	TemplatePaymentMethod         = "payment_method"
	TemplateSuspiciousTransaction = "suspicious_transaction"
	TemplateDailySummary          = "daily_summary"
	TemplateLowBalance            = "low_balance"
	TemplateNewOrder              = "new_order"
)

type Field struct {
	Label    string
	Key      string
	Format   Format
	Required bool
}

// Button is an inline action. CallbackData may contain {field}
// placeholders; Condition, when set, must hold for the button to render.
type Button struct {
	Text         string
	CallbackData string
	Condition    func(Data) bool
}

type Template struct {
	Name    string
	Title   string
	Icon    string
	Fields  []Field
	Footer  string
	Buttons []Button
}

func hasOrderID(data Data) bool {
	return stringValue(data["orderId"]) != ""
}

var transactionFields = []Field{
	{Label: "Bank", Key: "bankName", Format: TextFormat, Required: true},
	{Label: "Account", Key: "accountNumber", Format: TextFormat, Required: true},
	{Label: "Amount", Key: "amount", Format: CurrencyFormat, Required: true},
	{Label: "Content", Key: "content", Format: TextFormat, Required: true},
	{Label: "Transaction ID", Key: "transactionId", Format: TextFormat, Required: true},
	{Label: "Time", Key: "transactionDate", Format: DateTimeFormat, Required: true},
	{Label: "Table", Key: "tableCode", Format: TextFormat},
	{Label: "Phone", Key: "customerPhone", Format: PhoneFormat},
}

var Templates = map[string]Template{
	TemplateMoneyIn: {
		Name:   TemplateMoneyIn,
		Title:  "MONEY IN",
		Icon:   "💰",
		Fields: transactionFields,
		Footer: "📈 Incoming transfer received.",
		Buttons: []Button{
			{Text: "🍳 Start cooking", CallbackData: "start_cooking_{orderId}", Condition: hasOrderID},
			{Text: "📋 Order details", CallbackData: "view_details_{orderId}", Condition: hasOrderID},
		},
	},
	TemplateMoneyOut: {
		Name:   TemplateMoneyOut,
		Title:  "MONEY OUT",
		Icon:   "💸",
		Fields: transactionFields[:6],
		Footer: "📉 Outgoing transfer completed.",
	},
	TemplateOrderPayment: {
		Name:  TemplateOrderPayment,
		Title: "ORDER PAID",
		Icon:  "✅",
		Fields: []Field{
			{Label: "Order", Key: "orderId", Format: TextFormat, Required: true},
			{Label: "Table", Key: "tableCode", Format: TextFormat, Required: true},
			{Label: "Phone", Key: "customerPhone", Format: PhoneFormat, Required: true},
			{Label: "Amount", Key: "amount", Format: CurrencyFormat, Required: true},
			{Label: "Method", Key: "paymentMethod", Format: TextFormat, Required: true},
			{Label: "Time", Key: "timestamp", Format: DateTimeFormat, Required: true},
		},
		Footer: "🎉 The order has been paid.",
		Buttons: []Button{
			{Text: "🍳 Start cooking", CallbackData: "start_cooking_{orderId}"},
			{Text: "📋 Details", CallbackData: "view_details_{orderId}"},
		},
	},
	TemplatePaymentMethod: {
		Name:  TemplatePaymentMethod,
		Title: "PAYMENT METHOD",
		Icon:  "💳",
		Fields: []Field{
			{Label: "Order", Key: "orderId", Format: TextFormat, Required: true},
			{Label: "Table", Key: "tableCode", Format: TextFormat, Required: true},
			{Label: "Phone", Key: "customerPhone", Format: PhoneFormat, Required: true},
			{Label: "Amount", Key: "amount", Format: CurrencyFormat, Required: true},
			{Label: "Method", Key: "paymentMethod", Format: TextFormat, Required: true},
			{Label: "Payment code", Key: "paymentCode", Format: TextFormat},
			{Label: "Note", Key: "note", Format: TextFormat, Required: true},
			{Label: "Time", Key: "timestamp", Format: DateTimeFormat, Required: true},
		},
		Footer: "⏳ Waiting for payment.",
		Buttons: []Button{
			{Text: "📋 Order status", CallbackData: "status_{orderId}"},
		},
	},
	TemplateSuspiciousTransaction: {
		Name:  TemplateSuspiciousTransaction,
		Title: "SUSPICIOUS TRANSACTION",
		Icon:  "🚨",
		Fields: []Field{
			{Label: "Bank", Key: "bankName", Format: TextFormat, Required: true},
			{Label: "Amount", Key: "amount", Format: CurrencyFormat, Required: true},
			{Label: "Content", Key: "content", Format: TextFormat, Required: true},
			{Label: "Transaction ID", Key: "transactionId", Format: TextFormat, Required: true},
			{Label: "Time", Key: "transactionDate", Format: DateTimeFormat, Required: true},
			{Label: "Reasons", Key: "reasons", Format: TextFormat},
		},
		Footer: "⚠️ Please review this transaction.",
		Buttons: []Button{
			{Text: "✅ Looks legitimate", CallbackData: "confirm_transaction_{transactionId}"},
			{Text: "❌ Report", CallbackData: "report_suspicious_{transactionId}"},
		},
	},
	TemplateDailySummary: {
		Name:  TemplateDailySummary,
		Title: "DAILY SUMMARY",
		Icon:  "📊",
		Fields: []Field{
			{Label: "Date", Key: "date", Format: TextFormat, Required: true},
			{Label: "Income", Key: "totalIncome", Format: CurrencyFormat, Required: true},
			{Label: "Expense", Key: "totalExpense", Format: CurrencyFormat, Required: true},
			{Label: "Net", Key: "netAmount", Format: CurrencyFormat, Required: true},
			{Label: "Transactions", Key: "transactionCount", Format: TextFormat, Required: true},
		},
		Footer: "📈 Generated automatically from bank notifications.",
	},
	TemplateLowBalance: {
		Name:  TemplateLowBalance,
		Title: "LOW BALANCE",
		Icon:  "⚠️",
		Fields: []Field{
			{Label: "Bank", Key: "bankName", Format: TextFormat, Required: true},
			{Label: "Account", Key: "accountNumber", Format: TextFormat, Required: true},
			{Label: "Balance", Key: "currentBalance", Format: CurrencyFormat, Required: true},
			{Label: "Threshold", Key: "threshold", Format: CurrencyFormat, Required: true},
			{Label: "Checked at", Key: "checkTime", Format: DateTimeFormat, Required: true},
		},
		Footer: "💡 Please top up the account.",
	},
	TemplateNewOrder: {
		Name:  TemplateNewOrder,
		Title: "NEW ORDER",
		Icon:  "🍽️",
		Fields: []Field{
			{Label: "Order", Key: "orderId", Format: TextFormat, Required: true},
			{Label: "Table", Key: "tableCode", Format: TextFormat, Required: true},
			{Label: "Phone", Key: "customerPhone", Format: PhoneFormat, Required: true},
			{Label: "Items", Key: "items", Format: TextFormat, Required: true},
			{Label: "Total", Key: "totalAmount", Format: CurrencyFormat, Required: true},
			{Label: "Notes", Key: "notes", Format: TextFormat},
			{Label: "Time", Key: "createdAt", Format: DateTimeFormat, Required: true},
		},
		Buttons: []Button{
			{Text: "✅ Confirm", CallbackData: "confirm_{orderId}"},
			{Text: "❌ Reject", CallbackData: "reject_{orderId}"},
		},
	},
}
