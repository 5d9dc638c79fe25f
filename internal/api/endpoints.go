package api

// Endpoint paths on the remote commerce API, relative to the base URL.
const (
	EndpointLogin    = "auth/login"
	EndpointRegister = "auth/register"
	EndpointLogout   = "auth/logout"

	EndpointProducts       = "v1/products"
	EndpointProductDetails = "v1/products/details"
	EndpointProductGroups  = "v1/products/group"

	EndpointCategories = "v1/categories"
	EndpointOrders     = "v1/orders"
	EndpointInvoice    = "v1/order/invoice"
	EndpointDashboard  = "v1/dashboard"

	EndpointTelegramSend = "telegram/send-message"
)
