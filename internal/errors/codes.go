package errors

// Códigos de error expuestos al frontend
// Formato: CATEGORIA_DETALLE
// El frontend mapea sus mensajes a partir de estos códigos

const (
	// ==================== Autenticación (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // requiere inicio de sesión
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // email/contraseña incorrectos
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expirado
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // token inválido
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token revocado (logout)
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // email duplicado
	AuthRUTAlreadyExists   = "AUTH_RUT_EXISTS"          // RUT duplicado

	// ==================== Autorización (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // sin permiso de acceso
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // sin información de rol
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // sólo administradores

	// ==================== Validación (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // entrada inválida
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // ID inválido
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // formato inválido
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // fuera de rango
	ValidationRequired      = "VALIDATION_REQUIRED"       // campo obligatorio

	// ==================== RUT (VALIDATION_RUT_) ====================
	ValidationRUTEmpty     = "VALIDATION_RUT_EMPTY"     // RUT vacío
	ValidationRUTMalformed = "VALIDATION_RUT_MALFORMED" // forma inválida
	ValidationRUTInvalid   = "VALIDATION_RUT_INVALID"   // dígito verificador no coincide
	ValidationRUTSeparator = "VALIDATION_RUT_SEPARATOR" // falta el guion

	// ==================== Recursos (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // recurso no existe
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // ya existe
	ResourceConflict      = "RESOURCE_CONFLICT"       // conflicto

	// ==================== Productos (PRODUCT_) ====================
	ProductNotFound          = "PRODUCT_NOT_FOUND"          // producto no existe
	ProductInsufficientStock = "PRODUCT_INSUFFICIENT_STOCK" // stock insuficiente
	ProductInvalidCategory   = "PRODUCT_INVALID_CATEGORY"   // categoría inválida

	// ==================== Pedidos (ORDER_) ====================
	OrderNotFound        = "ORDER_NOT_FOUND"        // pedido no existe
	OrderEmpty           = "ORDER_EMPTY"            // pedido sin productos
	OrderInvalidDocument = "ORDER_INVALID_DOCUMENT" // boleta/factura inválida
	OrderInvalidStatus   = "ORDER_INVALID_STATUS"   // estado inválido

	// ==================== Cotizaciones (QUOTE_) ====================
	QuoteNotFound      = "QUOTE_NOT_FOUND"      // cotización no existe
	QuoteEmpty         = "QUOTE_EMPTY"          // cotización sin ítems
	QuoteInvalidStatus = "QUOTE_INVALID_STATUS" // transición de estado inválida

	// ==================== Subida de archivos (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // tipo de archivo no permitido
	UploadFailed          = "UPLOAD_FAILED"            // error al subir

	// ==================== Errores internos (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // error del servidor
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // error de base de datos
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // error de servicio externo
)
