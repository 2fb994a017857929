package redisx

import "time"

const (
	// Cache order status: order_status:{order_id} -> status string
	KeyOrderStatus = "order_status:%s"
)

var TTLStatusCache = 5 * time.Minute
