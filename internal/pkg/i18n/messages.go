package i18n

var english = map[string]string{
	"errors.bad_request":              "The request could not be read",
	"errors.unauthorized":             "You need to sign in before continuing",
	"errors.token_expired":            "Your session has expired, sign in again",
	"errors.invalid_credentials":      "Invalid email or password",
	"errors.forbidden":                "You are not allowed to perform this action",
	"errors.not_found":                "The requested resource was not found",
	"errors.validation_failed":        "Validation failed",
	"errors.not_employee":             "Only employees can check in or out",
	"errors.already_checked_in":       "You are already checked in",
	"errors.user_did_not_check_in":    "You have not checked in",
	"errors.user_already_checked_out": "You already checked out",
	"errors.rate_limited":             "Too many attempts, try again later",
	"errors.internal":                 "An unexpected error occurred",

	"validation.blank":                         "can't be blank",
	"validation.invalid":                       "is invalid",
	"validation.taken":                         "has already been taken",
	"validation.too_short":                     "is too short",
	"validation.too_long":                      "is too long",
	"validation.not_allowed_in_organization":   "is not allowed inside an organization",
	"validation.in_future":                     "can't be in the future",
	"validation.must_be_after_entered_at":      "must be after the entry time",
	"validation.only_for_employees":            "must belong to an employee",
	"validation.overlap":                       "overlaps with another attendance of the employee",
	"validation.only_one_open_per_employee":    "the employee already has an open attendance",
	"validation.open_must_be_latest":           "an open attendance must be the employee's latest one",
	"validation.only_one_per_employee_per_day": "the employee already has an attendance on that day",
}

var spanish = map[string]string{
	"errors.bad_request":              "No se pudo leer la solicitud",
	"errors.unauthorized":             "Necesitas iniciar sesión para continuar",
	"errors.token_expired":            "Tu sesión ha expirado, inicia sesión nuevamente",
	"errors.invalid_credentials":      "Correo o contraseña inválidos",
	"errors.forbidden":                "No tienes permiso para realizar esta acción",
	"errors.not_found":                "El recurso solicitado no existe",
	"errors.validation_failed":        "La validación falló",
	"errors.not_employee":             "Solo los empleados pueden marcar entrada o salida",
	"errors.already_checked_in":       "Ya marcaste tu entrada",
	"errors.user_did_not_check_in":    "No has marcado tu entrada",
	"errors.user_already_checked_out": "Ya marcaste tu salida",
	"errors.rate_limited":             "Demasiados intentos, inténtalo más tarde",
	"errors.internal":                 "Ocurrió un error inesperado",

	"validation.blank":                         "no puede estar en blanco",
	"validation.invalid":                       "no es válido",
	"validation.taken":                         "ya está en uso",
	"validation.too_short":                     "es demasiado corto",
	"validation.too_long":                      "es demasiado largo",
	"validation.not_allowed_in_organization":   "no está permitido dentro de una organización",
	"validation.in_future":                     "no puede estar en el futuro",
	"validation.must_be_after_entered_at":      "debe ser posterior a la hora de entrada",
	"validation.only_for_employees":            "debe pertenecer a un empleado",
	"validation.overlap":                       "se superpone con otra asistencia del empleado",
	"validation.only_one_open_per_employee":    "el empleado ya tiene una asistencia abierta",
	"validation.open_must_be_latest":           "una asistencia abierta debe ser la última del empleado",
	"validation.only_one_per_employee_per_day": "el empleado ya tiene una asistencia ese día",
}
