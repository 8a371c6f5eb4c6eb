package i18n

var catalog = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":              "Invalid request parameters",
		"error.unauthorized":             "Unauthorized",
		"error.forbidden":                "Permission denied",
		"error.not_found":                "Resource not found",
		"error.internal":                 "Internal server error",
		"error.rate_limited":             "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":   "Rate limiter unavailable",
		"error.jwt_secret_missing":       "Token secret is not configured",
		"error.auth_header_missing":      "Authorization header is missing",
		"error.auth_header_invalid":      "Authorization header is malformed",
		"error.token_invalid":            "Invalid token",
		"error.token_revoked":            "Token has been revoked",
		"error.user_disabled":            "Account is disabled",
		"error.user_exists":              "Username or email already registered",
		"error.user_not_found":           "User not found",
		"error.user_fetch_failed":        "Failed to load user",
		"error.login_invalid":            "Invalid email or password",
		"error.register_failed":          "Registration failed",
		"error.email_invalid":            "Invalid email address",
		"error.password_weak":            "Password does not meet the policy",
		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a number",
		"error.password_require_special": "Password must contain a special character",
		"error.item_kind_invalid":        "Item kind must be product or kit",
		"error.cart_quantity_invalid":    "Quantity must be a positive integer",
		"error.catalog_item_not_found":   "Product or kit not found",
		"error.cart_item_not_found":      "Item not found in cart",
		"error.cart_item_ambiguous":      "Item id matches both a product and a kit, specify kind",
		"error.cart_empty":               "Cart is empty or not found",
		"error.cart_conflict":            "Cart was modified concurrently, please retry",
		"error.cart_fetch_failed":        "Failed to load cart",
		"error.cart_update_failed":       "Failed to update cart",
		"error.shipping_address_missing": "Shipping address is required",
		"error.checkout_failed":          "Checkout failed",
		"error.order_not_found":          "No orders found",
		"error.order_fetch_failed":       "Failed to load orders",
		"error.order_id_invalid":         "Invalid order id",
		"error.product_not_found":        "Product not found",
		"error.product_fetch_failed":     "Failed to load products",
		"error.kit_not_found":            "Kit not found",
		"error.kit_fetch_failed":         "Failed to load kits",
		"error.catalog_price_invalid":    "Price must be zero or greater",
		"error.catalog_name_required":    "Name is required",
		"error.save_failed":              "Failed to save",
		"error.delete_failed":            "Failed to delete",
		"error.email_unavailable":        "Email delivery is not configured",
		"error.email_send_failed":        "Failed to send email",

		"email.order_confirmation.subject":  "Order confirmation #%d",
		"email.order_confirmation.greeting": "Hello %s,",
		"email.order_confirmation.intro":    "Thank you for your purchase. Here is a summary of your order:",
		"email.order_confirmation.line":     "- %s (%s #%d) x%d @ %s = %s",
		"email.order_confirmation.total":    "Total: %s",
		"email.order_confirmation.address":  "Shipping address: %s",
		"email.order_confirmation.thanks":   "Thanks for shopping with us, %s!",

		"error.password_max_length":       "Password must be at most %d bytes",
		"error.password_matches_identity": "Password must differ from your username and email",
		"error.username_length":           "Username must be between %d and %d characters",
		"error.username_charset":          "Username may only contain letters, digits, dot, underscore and hyphen",
		"error.shipping_address_too_long": "Shipping address is too long",

		"error.kit_request_contact_required": "Name and email are required",
		"error.kit_request_kit_required":     "Kit name is required",
		"error.kit_request_field_too_long":   "One of the fields is too long",
		"error.kit_request_not_found":        "No requests found",
		"error.kit_request_status_invalid":   "Status must be pending, contacted or closed",
		"error.kit_request_id_invalid":       "Invalid request id",
		"error.kit_request_failed":           "Failed to submit the request",
		"error.kit_request_fetch_failed":     "Failed to load requests",

		"error.role_invalid":    "Invalid role name",
		"error.role_exists":     "Role already exists",
		"error.role_not_found":  "Role not found",
		"error.role_builtin":    "Built-in roles cannot be changed this way",
		"error.grant_invalid":   "Route and method are required",
		"error.grant_not_found": "Grant not found",

		"email.kit_request_lead.subject": "[LEAD] New contact for kit: %s",
		"email.kit_request_lead.intro":   "A new kit information request was submitted.",
		"email.kit_request_lead.kit":     "Kit: %s",
		"email.kit_request_lead.name":    "Name: %s",
		"email.kit_request_lead.email":   "Email: %s",
		"email.kit_request_lead.message": "Message: %s",
		"email.kit_request_lead.date":    "Date: %s",

		"email.kit_request_receipt.subject":   "Your contact request was received",
		"email.kit_request_receipt.greeting":  "Hello %s,",
		"email.kit_request_receipt.body":      "We received your request about %s. Our team will contact you soon.",
		"email.kit_request_receipt.signature": "The Kitshop team",
	},
	LocaleES: {
		"error.bad_request":              "Parámetros de solicitud inválidos",
		"error.unauthorized":             "No autorizado",
		"error.forbidden":                "Permiso denegado",
		"error.not_found":                "Recurso no encontrado",
		"error.internal":                 "Error interno del servidor",
		"error.rate_limited":             "Demasiadas solicitudes, reintenta en %d segundos",
		"error.token_invalid":            "Token inválido",
		"error.user_exists":              "El usuario o correo ya está registrado",
		"error.login_invalid":            "Correo o contraseña inválidos",
		"error.item_kind_invalid":        "El tipo debe ser product o kit",
		"error.cart_quantity_invalid":    "La cantidad debe ser un entero positivo",
		"error.catalog_item_not_found":   "Producto o kit no encontrado",
		"error.cart_item_not_found":      "El producto no está en el carrito",
		"error.cart_item_ambiguous":      "El id coincide con un producto y un kit, indica el tipo",
		"error.cart_empty":               "El carrito está vacío o no existe",
		"error.cart_conflict":            "El carrito fue modificado concurrentemente, reintenta",
		"error.shipping_address_missing": "La dirección de envío es obligatoria",
		"error.order_not_found":          "No se encontraron órdenes",

		"email.order_confirmation.subject":  "Confirmación de Orden #%d",
		"email.order_confirmation.greeting": "Hola %s,",
		"email.order_confirmation.intro":    "Gracias por tu compra. Este es el resumen de tu orden:",
		"email.order_confirmation.line":     "- %s (%s #%d) x%d @ %s = %s",
		"email.order_confirmation.total":    "Total: %s",
		"email.order_confirmation.address":  "Dirección de envío: %s",
		"email.order_confirmation.thanks":   "¡Gracias por comprar con nosotros, %s!",

		"error.shipping_address_too_long":    "La dirección de envío es demasiado larga",
		"error.kit_request_contact_required": "Nombre y email son obligatorios",
		"error.kit_request_kit_required":     "El nombre del kit es obligatorio",
		"error.kit_request_not_found":        "No se encontraron solicitudes",

		"email.kit_request_lead.subject": "[LEAD] Nuevo Contacto para Kit: %s",
		"email.kit_request_lead.intro":   "Se recibió una nueva solicitud de información de kit.",
		"email.kit_request_lead.kit":     "Kit: %s",
		"email.kit_request_lead.name":    "Nombre: %s",
		"email.kit_request_lead.email":   "Email: %s",
		"email.kit_request_lead.message": "Mensaje: %s",
		"email.kit_request_lead.date":    "Fecha: %s",

		"email.kit_request_receipt.subject":   "Confirmación de Solicitud de Contacto SOL-e",
		"email.kit_request_receipt.greeting":  "Hola %s,",
		"email.kit_request_receipt.body":      "Recibimos tu solicitud sobre %s. Nuestro equipo se pondrá en contacto contigo pronto.",
		"email.kit_request_receipt.signature": "El equipo de SOL-e",
	},
	LocaleZhCN: {
		"error.bad_request":              "请求参数错误",
		"error.unauthorized":             "未授权",
		"error.forbidden":                "无权限",
		"error.not_found":                "资源不存在",
		"error.internal":                 "服务器内部错误",
		"error.rate_limited":             "请求过于频繁，请 %d 秒后重试",
		"error.token_invalid":            "无效的 token",
		"error.user_exists":              "用户名或邮箱已注册",
		"error.login_invalid":            "邮箱或密码错误",
		"error.item_kind_invalid":        "商品类型必须为 product 或 kit",
		"error.cart_quantity_invalid":    "数量必须为正整数",
		"error.catalog_item_not_found":   "商品或套件不存在",
		"error.cart_item_not_found":      "购物车中不存在该商品",
		"error.cart_item_ambiguous":      "该 ID 同时匹配商品和套件，请指定类型",
		"error.cart_empty":               "购物车为空或不存在",
		"error.cart_conflict":            "购物车已被并发修改，请重试",
		"error.shipping_address_missing": "收货地址不能为空",
		"error.order_not_found":          "未找到订单",

		"email.order_confirmation.subject":  "订单确认 #%d",
		"email.order_confirmation.greeting": "%s 您好，",
		"email.order_confirmation.intro":    "感谢您的购买，以下是订单摘要：",
		"email.order_confirmation.line":     "- %s（%s #%d）x%d @ %s = %s",
		"email.order_confirmation.total":    "合计：%s",
		"email.order_confirmation.address":  "收货地址：%s",
		"email.order_confirmation.thanks":   "感谢您的光临，%s！",

		"error.shipping_address_too_long":    "收货地址过长",
		"error.kit_request_contact_required": "姓名和邮箱不能为空",
		"error.kit_request_not_found":        "未找到咨询记录",

		"email.kit_request_receipt.subject":   "咨询已收到",
		"email.kit_request_receipt.greeting":  "%s 您好，",
		"email.kit_request_receipt.body":      "我们已收到您关于 %s 的咨询，工作人员会尽快与您联系。",
		"email.kit_request_receipt.signature": "Kitshop 团队",
	},
}
