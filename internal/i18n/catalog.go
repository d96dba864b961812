// Package i18n is a lookup table of user-facing messages keyed by language
// code and message id. English is the fallback for unknown languages or keys.
package i18n

// Supported language codes.
const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

// IsSupported reports whether lang is a selectable language code.
func IsSupported(lang string) bool {
	return lang == LangEnglish || lang == LangArabic
}

var catalog = map[string]map[string]string{
	LangEnglish: {
		"signup.domain_only":       "Only @upm.edu.sa emails are allowed for registration",
		"signup.password_mismatch": "Passwords do not match",
		"signup.password_short":    "Password must be at least 7 characters long",
		"signup.invalid_email":     "Invalid email format.",
		"signup.admin_exists":      "Admin account already exists",
		"signup.student_exists":    "Student already exists",
		"signup.admin_created":     "Admin account created successfully",
		"signup.student_created":   "Student account created successfully",
		"login.success":            "Logged in successfully",
		"login.invalid":            "Invalid email or password",
		"complaint.daily_limit":    "You have reached the daily limit of complaints.",
		"complaint.fill_fields":    "Please fill all fields correctly",
		"complaint.too_short":      "Must be more than 3 characters",
		"complaint.submitted":      "Complaint submitted successfully, it will be reviewed within 3 days",
		"complaint.access_denied":  "Access denied",
		"complaint.not_found":      "Complaint not found",
		"response.too_short":       "Response is too short",
		"response.required":        "Response text is required",
		"response.sent":            "Response sent successfully",
		"rating.invalid":           "Invalid data",
		"rating.out_of_range":      "Rating must be between 1 and 5",
		"rating.not_found":         "Response not found",
		"admin.access_denied":      "Access denied",
		"common.not_found":         "Not found",
		"common.operation_failed":  "Operation failed, please try again",
	},
	LangArabic: {
		"signup.domain_only":       "فقط الإيميلات الجامعية @upm.edu.sa مسموحة للتسجيل",
		"signup.password_mismatch": "كلمة المرور غير متطابقة",
		"signup.password_short":    "كلمة المرور يجب أن تكون 7 أحرف على الأقل",
		"signup.invalid_email":     "صيغة البريد غير صالحة.",
		"signup.admin_exists":      "الحساب الإداري موجود مسبقًا",
		"signup.student_exists":    "الطالب موجود مسبقًا",
		"signup.admin_created":     "تم إنشاء حساب إداري بنجاح",
		"signup.student_created":   "تم إنشاء حساب الطالب بنجاح",
		"login.success":            "تم تسجيل الدخول بنجاح",
		"login.invalid":            "الإيميل أو كلمة المرور غير صحيحة",
		"complaint.daily_limit":    "لقد وصلت إلى الحد الأقصى للشكاوى لهذا اليوم",
		"complaint.fill_fields":    "يرجى ملء جميع الحقول بشكل صحيح",
		"complaint.too_short":      "يجب ان يتجاوز ٣ احرف",
		"complaint.submitted":      "تم إرسال الشكوى بنجاح، سيتم مراجعتها خلال ٣ أيام",
		"complaint.access_denied":  "غير مصرح لك",
		"complaint.not_found":      "الشكوى غير موجودة",
		"response.too_short":       "الرد قصير جدًا",
		"response.required":        "نص الرد مطلوب",
		"response.sent":            "تم إرسال الرد بنجاح",
		"rating.invalid":           "بيانات غير صالحة",
		"rating.out_of_range":      "التقييم يجب أن يكون بين ١ و ٥",
		"rating.not_found":         "الرد غير موجود",
		"admin.access_denied":      "غير مصرح لك",
		"common.not_found":         "غير موجود",
		"common.operation_failed":  "فشلت العملية، حاول مرة أخرى",
	},
}

// T resolves a message by language and key, falling back to English and then
// to the key itself.
func T(lang, key string) string {
	if msgs, ok := catalog[lang]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[LangEnglish][key]; ok {
		return msg
	}
	return key
}
