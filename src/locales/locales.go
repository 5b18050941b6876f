package locales

import "github.com/bwmarrin/discordgo"

// Supported language codes.
const (
	English  = "EN"
	Greek    = "EL"
	Spanish  = "ES"
	Russian  = "RU"
	Japanese = "JA"
)

const DefaultLocale = English

var tables = map[string]map[string]string{
	English: {
		"welcome":          "Welcome to Thronos Chain!",
		"roadmap_desc":     "Here is the Thronos Roadmap.",
		"whitepaper_desc":  "Here is the Thronos Whitepaper.",
		"website_desc":     "Visit our website:",
		"help_title":       "🤖 Thronos Bot Commands",
		"help_description": "Here are all available commands:",
		"help_commands": "**/propose** - Create a governance proposal (Admin only)\n" +
			"**/proposals** - List all proposals\n" +
			"**/leaderboard** - Show top community members\n" +
			"**/rank** - Show your rank and stats\n" +
			"**/stats** - Show real-time network statistics\n" +
			"**/tokens** /token - Browse tokens on the network\n" +
			"**/roadmap** /whitepaper /website - Project info links\n" +
			"**/referral** - Get your referral code\n" +
			"**/setup-server** - Auto-configure server channels (Admin only)",
		"help_footer": "For support, contact an administrator",
	},
	Greek: {
		"welcome":          "Καλώς ήρθατε στο Thronos Chain!",
		"roadmap_desc":     "Εδώ είναι ο οδικός χάρτης του Thronos.",
		"whitepaper_desc":  "Εδώ είναι η λευκή βίβλος του Thronos.",
		"website_desc":     "Επισκεφθείτε την ιστοσελίδα μας:",
		"help_title":       "🤖 Εντολές Thronos Bot",
		"help_description": "Εδώ είναι όλες οι διαθέσιμες εντολές:",
		"help_commands": "**/propose** - Δημιουργία πρότασης διακυβέρνησης (Μόνο Admin)\n" +
			"**/proposals** - Λίστα όλων των προτάσεων\n" +
			"**/leaderboard** - Κορυφαία μέλη της κοινότητας\n" +
			"**/rank** - Η κατάταξη και τα στατιστικά σας\n" +
			"**/stats** - Στατιστικά δικτύου σε πραγματικό χρόνο\n" +
			"**/tokens** /token - Περιήγηση στα tokens του δικτύου\n" +
			"**/roadmap** /whitepaper /website - Σύνδεσμοι πληροφοριών\n" +
			"**/referral** - Ο κωδικός σύστασής σας\n" +
			"**/setup-server** - Αυτόματη διαμόρφωση καναλιών (Μόνο Admin)",
		"help_footer": "Για υποστήριξη, επικοινωνήστε με έναν διαχειριστή",
	},
	Spanish: {
		"welcome":          "¡Bienvenido a Thronos Chain!",
		"roadmap_desc":     "Aquí está la hoja de ruta de Thronos.",
		"whitepaper_desc":  "Aquí está el libro blanco de Thronos.",
		"website_desc":     "Visita nuestro sitio web:",
		"help_title":       "🤖 Comandos de Thronos Bot",
		"help_description": "Aquí están todos los comandos disponibles:",
		"help_commands": "**/propose** - Crear una propuesta de gobernanza (Solo Admin)\n" +
			"**/proposals** - Listar todas las propuestas\n" +
			"**/leaderboard** - Mostrar los mejores miembros\n" +
			"**/rank** - Mostrar tu rango y estadísticas\n" +
			"**/stats** - Estadísticas de red en tiempo real\n" +
			"**/tokens** /token - Explorar los tokens de la red\n" +
			"**/roadmap** /whitepaper /website - Enlaces del proyecto\n" +
			"**/referral** - Obtener tu código de referido\n" +
			"**/setup-server** - Configurar canales automáticamente (Solo Admin)",
		"help_footer": "Para soporte, contacte a un administrador",
	},
	Russian: {
		"welcome":          "Добро пожаловать в Thronos Chain!",
		"roadmap_desc":     "Вот дорожная карта Thronos.",
		"whitepaper_desc":  "Вот белая книга Thronos.",
		"website_desc":     "Посетите наш сайт:",
		"help_title":       "🤖 Команды Thronos Bot",
		"help_description": "Вот все доступные команды:",
		"help_commands": "**/propose** - Создать предложение (Только Admin)\n" +
			"**/proposals** - Список всех предложений\n" +
			"**/leaderboard** - Лучшие участники сообщества\n" +
			"**/rank** - Ваш ранг и статистика\n" +
			"**/stats** - Статистика сети в реальном времени\n" +
			"**/tokens** /token - Токены сети\n" +
			"**/roadmap** /whitepaper /website - Ссылки проекта\n" +
			"**/referral** - Ваш реферальный код\n" +
			"**/setup-server** - Автонастройка каналов (Только Admin)",
		"help_footer": "Для поддержки свяжитесь с администратором",
	},
	Japanese: {
		"welcome":          "Thronos Chainへようこそ！",
		"roadmap_desc":     "これがThronosのロードマップです。",
		"whitepaper_desc":  "これがThronosのホワイトペーパーです。",
		"website_desc":     "ウェブサイトをご覧ください：",
		"help_title":       "🤖 Thronos Bot コマンド",
		"help_description": "利用可能なコマンド一覧:",
		"help_commands": "**/propose** - ガバナンス提案を作成 (管理者のみ)\n" +
			"**/proposals** - すべての提案を一覧表示\n" +
			"**/leaderboard** - トップコミュニティメンバーを表示\n" +
			"**/rank** - あなたのランクと統計を表示\n" +
			"**/stats** - リアルタイムネットワーク統計を表示\n" +
			"**/tokens** /token - ネットワーク上のトークンを閲覧\n" +
			"**/roadmap** /whitepaper /website - プロジェクト情報リンク\n" +
			"**/referral** - 紹介コードを取得\n" +
			"**/setup-server** - サーバーチャンネルの自動設定 (管理者のみ)",
		"help_footer": "サポートについては管理者にお問い合わせください",
	},
}

var roleLanguages = map[string]string{
	"English":  English,
	"Greek":    Greek,
	"Spanish":  Spanish,
	"Russian":  Russian,
	"Japanese": Japanese,
}

// Text returns the localized string for key, falling back to the default
// locale and finally to the key itself.
func Text(key, lang string) string {
	table, ok := tables[lang]
	if !ok {
		table = tables[DefaultLocale]
	}
	if v, ok := table[key]; ok {
		return v
	}
	if v, ok := tables[DefaultLocale][key]; ok {
		return v
	}
	return key
}

// MemberLang derives a member's preferred language from their role names.
func MemberLang(s *discordgo.Session, guildID string, member *discordgo.Member) string {
	if member == nil {
		return DefaultLocale
	}
	for _, roleID := range member.Roles {
		role, err := s.State.Role(guildID, roleID)
		if err != nil {
			continue
		}
		if lang, ok := roleLanguages[role.Name]; ok {
			return lang
		}
	}
	return DefaultLocale
}
