package build

// SupportedLanguages is the fixed set of language codes this project
// builds dictionaries for, matching the upstream app's own language
// list (Language.kt in the original project).
var SupportedLanguages = []string{
	"sq", "ar", "az", "bn", "bg", "ca", "zh", "hr", "cs", "da", "nl", "en", "et", "fi", "fr", "de",
	"el", "gu", "he", "hi", "hu", "id", "it", "ja", "kn", "ko", "lv", "lt", "ms", "ml", "fa", "pl",
	"pt", "ro", "ru", "sk", "sl", "es", "sv", "ta", "te", "tr", "uk",
}
