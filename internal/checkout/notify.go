package checkout

const (
	TopicOrderPlaced = "order.placed"
	EventOrderPlaced = "OrderPlaced"
)

type NotificationItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
}

// Notification is the message published to the queue once per committed
// order. Email is the caller's, forwarded unchanged.
type Notification struct {
	OrderID       string             `json:"order_id"`
	Email         string             `json:"email"`
	TotalAmount   int                `json:"total_amount"`
	TotalQuantity int                `json:"total_quantity"`
	Items         []NotificationItem `json:"items"`
}

// Partition key = order_id so downstream consumers see one order's events in order.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
