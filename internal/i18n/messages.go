package i18n

import "github.com/vitrina-next/internal/constants"

var messages = map[string]map[string]string{
	constants.LocaleEsCO: {
		"error.bad_request":              "Solicitud inválida",
		"error.unauthorized":             "No autorizado",
		"error.forbidden":                "No tienes permiso para esta acción",
		"error.not_found":                "Recurso no encontrado",
		"error.internal":                 "Error interno del servidor",
		"error.rate_limited":             "Demasiadas solicitudes, intenta de nuevo en %d segundos",
		"error.rate_limit_unavailable":   "Límite de solicitudes no disponible",
		"error.login_too_many":           "Demasiados intentos de inicio de sesión, espera %d segundos",
		"error.auth_header_missing":      "Falta el encabezado de autorización",
		"error.auth_header_invalid":      "Encabezado de autorización inválido",
		"error.token_invalid":            "Token inválido o expirado",
		"error.token_revoked":            "La sesión ya no es válida, inicia sesión de nuevo",
		"error.jwt_secret_missing":       "La autenticación no está configurada",
		"error.login_invalid":            "Correo o contraseña incorrectos",
		"error.admin_disabled":           "La cuenta está deshabilitada",
		"error.admin_not_found":          "Cuenta no encontrada",
		"error.admin_email_exists":       "El correo ya está registrado",
		"error.admin_role_invalid":       "Rol inválido",
		"error.admin_status_invalid":     "Estado de cuenta inválido",
		"error.admin_self_modify":        "No puedes modificar tu propia cuenta de esta forma",
		"error.email_invalid":            "Correo inválido",
		"error.password_invalid":         "La contraseña actual es incorrecta",
		"error.password_weak":            "La contraseña no cumple la política de seguridad",
		"error.password_min_length":      "La contraseña debe tener al menos %d caracteres",
		"error.password_require_upper":   "La contraseña debe incluir una mayúscula",
		"error.password_require_lower":   "La contraseña debe incluir una minúscula",
		"error.password_require_number":  "La contraseña debe incluir un número",
		"error.password_require_special": "La contraseña debe incluir un carácter especial",
		"error.password_too_long":        "La contraseña no puede superar %d bytes",
		"error.authz_role_invalid":       "Rol inválido",
		"error.authz_policy_invalid":     "Política de permisos inválida",
		"error.authz_policy_protected":   "Esta política del superadministrador no se puede revocar",
		"error.captcha_required":         "Completa el captcha",
		"error.captcha_invalid":          "Captcha incorrecto",
		"error.captcha_unavailable":      "El captcha no está habilitado",
		"error.product_not_found":        "Producto no encontrado",
		"error.product_name_required":    "El nombre del producto es obligatorio",
		"error.product_price_invalid":    "Precio, impuesto o descuento inválido",
		"error.product_status_invalid":   "Estado de producto inválido",
		"error.product_not_available":    "El producto no está disponible",
		"error.cart_key_required":        "Falta la clave del carrito",
		"error.cart_quantity_invalid":    "Cantidad inválida",
		"error.shared_cart_invalid":      "El enlace del carrito compartido no es válido",
		"error.order_not_found":          "Pedido no encontrado",
		"error.order_status_invalid":     "Estado de pedido inválido",
		"error.order_amount_invalid":     "Total del pedido inválido",
		"error.order_item_invalid":       "Artículo del pedido inválido",
		"error.affiliate_not_found":      "Afiliado no encontrado",
		"error.affiliate_invalid":        "Datos de afiliado inválidos",
		"error.affiliate_status_invalid": "Estado de afiliado inválido",
		"error.affiliate_code_exhausted": "No se pudo generar un código de referido único",
		"error.affiliate_config_invalid": "Configuración de afiliados inválida",
		"error.business_config_invalid":  "Configuración del negocio inválida",
		"error.payout_not_found":         "Pago no encontrado",
		"error.payout_amount_invalid":    "El monto del pago debe ser mayor que cero",
		"error.payout_method_invalid":    "Método de pago no disponible",
		"error.payout_status_invalid":    "Estado de pago inválido",
		"error.referred_not_found":       "Cliente referido no encontrado",
		"error.referred_invalid":         "Datos del cliente referido inválidos",
		"error.revenue_invalid":          "El monto de ingresos debe ser mayor que cero",
		"error.ai_unavailable":           "La generación con IA no está disponible",
		"error.ai_prompt_required":       "Falta información para generar el contenido",
		"error.ai_generate_failed":       "No se pudo generar el contenido",
	},
	constants.LocaleEnUS: {
		"error.bad_request":              "Bad request",
		"error.unauthorized":             "Unauthorized",
		"error.forbidden":                "You are not allowed to perform this action",
		"error.not_found":                "Resource not found",
		"error.internal":                 "Internal server error",
		"error.rate_limited":             "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":   "Rate limiter unavailable",
		"error.login_too_many":           "Too many login attempts, wait %d seconds",
		"error.auth_header_missing":      "Authorization header missing",
		"error.auth_header_invalid":      "Invalid authorization header",
		"error.token_invalid":            "Invalid or expired token",
		"error.token_revoked":            "Session is no longer valid, please sign in again",
		"error.jwt_secret_missing":       "Authentication is not configured",
		"error.login_invalid":            "Wrong email or password",
		"error.admin_disabled":           "Account is disabled",
		"error.admin_not_found":          "Account not found",
		"error.admin_email_exists":       "Email already registered",
		"error.admin_role_invalid":       "Invalid role",
		"error.admin_status_invalid":     "Invalid account status",
		"error.admin_self_modify":        "You cannot modify your own account this way",
		"error.email_invalid":            "Invalid email",
		"error.password_invalid":         "Current password is wrong",
		"error.password_weak":            "Password does not meet the security policy",
		"error.password_min_length":      "Password must have at least %d characters",
		"error.password_require_upper":   "Password must include an uppercase letter",
		"error.password_require_lower":   "Password must include a lowercase letter",
		"error.password_require_number":  "Password must include a number",
		"error.password_require_special": "Password must include a special character",
		"error.password_too_long":        "Password must not exceed %d bytes",
		"error.authz_role_invalid":       "Invalid role",
		"error.authz_policy_invalid":     "Invalid permission policy",
		"error.authz_policy_protected":   "This superadmin policy cannot be revoked",
		"error.captcha_required":         "Please complete the captcha",
		"error.captcha_invalid":          "Wrong captcha",
		"error.captcha_unavailable":      "Captcha is not enabled",
		"error.product_not_found":        "Product not found",
		"error.product_name_required":    "Product name is required",
		"error.product_price_invalid":    "Invalid price, tax or discount",
		"error.product_status_invalid":   "Invalid product status",
		"error.product_not_available":    "Product is not available",
		"error.cart_key_required":        "Cart key is missing",
		"error.cart_quantity_invalid":    "Invalid quantity",
		"error.shared_cart_invalid":      "Shared cart link is not valid",
		"error.order_not_found":          "Order not found",
		"error.order_status_invalid":     "Invalid order status",
		"error.order_amount_invalid":     "Invalid order total",
		"error.order_item_invalid":       "Invalid order item",
		"error.affiliate_not_found":      "Affiliate not found",
		"error.affiliate_invalid":        "Invalid affiliate data",
		"error.affiliate_status_invalid": "Invalid affiliate status",
		"error.affiliate_code_exhausted": "Could not generate a unique referral code",
		"error.affiliate_config_invalid": "Invalid affiliate settings",
		"error.business_config_invalid":  "Invalid business settings",
		"error.payout_not_found":         "Payout not found",
		"error.payout_amount_invalid":    "Payout amount must be greater than zero",
		"error.payout_method_invalid":    "Payout method not available",
		"error.payout_status_invalid":    "Invalid payout status",
		"error.referred_not_found":       "Referred client not found",
		"error.referred_invalid":         "Invalid referred client data",
		"error.revenue_invalid":          "Revenue amount must be greater than zero",
		"error.ai_unavailable":           "AI generation is not available",
		"error.ai_prompt_required":       "Missing information to generate content",
		"error.ai_generate_failed":       "Content generation failed",
	},
	constants.LocaleZhCN: {
		"error.bad_request":              "请求参数错误",
		"error.unauthorized":             "未授权",
		"error.forbidden":                "无权执行该操作",
		"error.not_found":                "资源不存在",
		"error.internal":                 "服务器内部错误",
		"error.rate_limited":             "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":   "限流服务不可用",
		"error.login_too_many":           "登录尝试过多，请等待 %d 秒",
		"error.auth_header_missing":      "缺少 Authorization 请求头",
		"error.auth_header_invalid":      "Authorization 请求头格式错误",
		"error.token_invalid":            "Token 无效或已过期",
		"error.token_revoked":            "登录状态已失效，请重新登录",
		"error.jwt_secret_missing":       "未配置鉴权密钥",
		"error.login_invalid":            "邮箱或密码错误",
		"error.admin_disabled":           "账号已被禁用",
		"error.admin_not_found":          "账号不存在",
		"error.admin_email_exists":       "邮箱已被注册",
		"error.admin_role_invalid":       "角色无效",
		"error.admin_status_invalid":     "账号状态无效",
		"error.admin_self_modify":        "不能以此方式修改自己的账号",
		"error.email_invalid":            "邮箱格式错误",
		"error.password_invalid":         "当前密码错误",
		"error.password_weak":            "密码不符合安全策略",
		"error.password_min_length":      "密码长度至少 %d 位",
		"error.password_require_upper":   "密码需包含大写字母",
		"error.password_require_lower":   "密码需包含小写字母",
		"error.password_require_number":  "密码需包含数字",
		"error.password_require_special": "密码需包含特殊字符",
		"error.password_too_long":        "密码长度不能超过 %d 字节",
		"error.authz_role_invalid":       "角色无效",
		"error.authz_policy_invalid":     "权限策略无效",
		"error.authz_policy_protected":   "超级管理员的预置策略不可撤销",
		"error.captcha_required":         "请完成验证码",
		"error.captcha_invalid":          "验证码错误",
		"error.captcha_unavailable":      "验证码未启用",
		"error.product_not_found":        "商品不存在",
		"error.product_name_required":    "商品名称不能为空",
		"error.product_price_invalid":    "价格、税率或折扣无效",
		"error.product_status_invalid":   "商品状态无效",
		"error.product_not_available":    "商品不可购买",
		"error.cart_key_required":        "缺少购物车标识",
		"error.cart_quantity_invalid":    "数量无效",
		"error.shared_cart_invalid":      "分享的购物车链接无效",
		"error.order_not_found":          "订单不存在",
		"error.order_status_invalid":     "订单状态无效",
		"error.order_amount_invalid":     "订单金额无效",
		"error.order_item_invalid":       "订单商品无效",
		"error.affiliate_not_found":      "推广员不存在",
		"error.affiliate_invalid":        "推广员资料无效",
		"error.affiliate_status_invalid": "推广员状态无效",
		"error.affiliate_code_exhausted": "无法生成唯一推广码",
		"error.affiliate_config_invalid": "推广计划配置无效",
		"error.business_config_invalid":  "店铺配置无效",
		"error.payout_not_found":         "结算记录不存在",
		"error.payout_amount_invalid":    "结算金额必须大于 0",
		"error.payout_method_invalid":    "结算方式不可用",
		"error.payout_status_invalid":    "结算状态无效",
		"error.referred_not_found":       "被推荐客户不存在",
		"error.referred_invalid":         "被推荐客户资料无效",
		"error.revenue_invalid":          "营收金额必须大于 0",
		"error.ai_unavailable":           "AI 文案生成不可用",
		"error.ai_prompt_required":       "缺少生成内容所需的信息",
		"error.ai_generate_failed":       "文案生成失败",
	},
}
