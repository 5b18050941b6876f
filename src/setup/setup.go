package setup

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	shareddiscord "github.com/thronos-network/thronos-bot/src/discord"
	"github.com/thronos-network/thronos-bot/src/scraper"
)

// category → channels, provisioned in order.
type categoryDef struct {
	Name     string
	Channels []string
}

var serverStructure = []categoryDef{
	{"📜 Information", []string{"announcements", "roadmap", "whitepaper"}},
	{"📊 Thronos Network", []string{"network-stats", "governance"}},
	{"🛠️ Ecosystem", []string{"token-factory", "nft-marketplace", "smart-contracts", "decent-music"}},
	{"🎓 Community & Earn", []string{"learn-and-earn", "general"}},
	{"🎮 Gaming", []string{"crypto-hunters"}},
}

// channelContent is the unified multilingual blurb posted into an ecosystem
// channel. Descriptions are ordered EN, EL, ES, RU, JA.
type channelContent struct {
	Title        string
	Path         string
	Descriptions [5]string
}

var languageFlags = [5]string{"🇬🇧 English", "🇬🇷 Ελληνικά", "🇪🇸 Español", "🇷🇺 Русский", "🇯🇵 日本語"}

var unifiedContent = map[string]channelContent{
	"token-factory": {
		Title: "🏭 Token Factory", Path: "/tokens",
		Descriptions: [5]string{
			"Create your own tokens with one click. ERC-20 compatible with full control.",
			"Δημιουργήστε τα δικά σας tokens με μία κλικ. ERC-20 compatible με πλήρη έλεγχο.",
			"Crea tus propios tokens con un clic. Compatible con ERC-20 con control total.",
			"Создавайте свои токены одним кликом. Совместимость с ERC-20 и полный контроль.",
			"ワンクリックで独自のトークンを作成。ERC-20互換で完全制御。",
		},
	},
	"nft-marketplace": {
		Title: "🖼️ NFT Marketplace", Path: "/nft",
		Descriptions: [5]string{
			"Mint, buy and sell unique digital artworks.",
			"Mint, αγοράστε και πουλήστε μοναδικά ψηφιακά έργα τέχνης.",
			"Acuña, compra y vende obras de arte digitales únicas.",
			"Создавайте, покупайте и продавайте уникальные цифровые произведения искусства.",
			"ユニークなデジタルアートをミント、購入、販売。",
		},
	},
	"smart-contracts": {
		Title: "📜 Smart Contracts", Path: "/evm",
		Descriptions: [5]string{
			"Deploy EVM-compatible smart contracts with ready templates.",
			"Deploy EVM-compatible smart contracts με έτοιμα templates.",
			"Despliega contratos inteligentes compatibles con EVM con plantillas listas.",
			"Развертывайте EVM-совместимые смарт-контракты с готовыми шаблонами.",
			"既製テンプレートでEVM互換スマートコントラクトをデプロイ。",
		},
	},
	"decent-music": {
		Title: "🎵 Decent Music", Path: "/music",
		Descriptions: [5]string{
			"Decentralized music platform for artists and listeners.",
			"Αποκεντρωμένη πλατφόρμα μουσικής για καλλιτέχνες και ακροατές.",
			"Plataforma de música descentralizada para artistas y oyentes.",
			"Децентрализованная музыкальная платформа для артистов и слушателей.",
			"アーティストとリスナーのための分散型音楽プラットフォーム。",
		},
	},
	"learn-and-earn": {
		Title: "📚 Learn & Earn", Path: "/courses",
		Descriptions: [5]string{
			"Learn about blockchain and earn THR tokens by completing courses.",
			"Μάθετε για το blockchain και κερδίστε THR tokens ολοκληρώνοντας μαθήματα.",
			"Aprende sobre blockchain y gana tokens THR completando cursos.",
			"Изучайте блокчейн и зарабатывайте токены THR, проходя курсы.",
			"ブロックチェーンを学び、コース完了でTHRトークンを獲得。",
		},
	},
	"governance": {
		Title: "🏛️ DAO Governance", Path: "/governance",
		Descriptions: [5]string{
			"Vote on proposals and shape the future of the network.",
			"Ψηφίστε για προτάσεις και διαμορφώστε το μέλλον του δικτύου.",
			"Vota propuestas y da forma al futuro de la red.",
			"Голосуйте за предложения и формируйте будущее сети.",
			"提案に投票し、ネットワークの未来を形作りましょう。",
		},
	},
	"crypto-hunters": {
		Title: "🎮 Crypto Hunters", Path: "/game",
		Descriptions: [5]string{
			"Join the hunt! Help us test the upcoming game. Vote on features.",
			"Λάβετε μέρος στο κυνήγι! Βοηθήστε μας να δοκιμάσουμε το επερχόμενο παιχνίδι.",
			"¡Únete a la caza! Ayúdanos a probar el próximo juego.",
			"Присоединяйтесь к охоте! Помогите протестировать будущую игру.",
			"ハントに参加しよう！今後のゲームのテストにご協力ください。",
		},
	},
}

// Provisioner builds the server's category/channel structure and keeps the
// info channels populated.
type Provisioner struct {
	scraper *scraper.Scraper
	guildID string
}

func NewProvisioner(sc *scraper.Scraper, guildID string) *Provisioner {
	return &Provisioner{scraper: sc, guildID: guildID}
}

// HandleSetup runs the full provisioning pass behind a deferred response.
func (p *Provisioner) HandleSetup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !shareddiscord.IsAdmin(i) {
		shareddiscord.RespondEphemeral(s, i, "❌ You need administrator permissions to run server setup.")
		return
	}

	if err := shareddiscord.DeferEphemeral(s, i); err != nil {
		log.Printf("setup: defer interaction: %v", err)
		return
	}

	if err := p.Provision(context.Background(), s); err != nil {
		log.Printf("setup: provision guild %s: %v", p.guildID, err)
		shareddiscord.EditResponse(s, i, fmt.Sprintf("❌ Setup failed: %v", err))
		return
	}

	shareddiscord.EditResponse(s, i, "✅ Unified multi-language server updated!")
}

// Provision creates missing categories/channels and refreshes channel content.
func (p *Provisioner) Provision(ctx context.Context, s *discordgo.Session) error {
	for _, category := range serverStructure {
		if err := p.ensureCategory(s, category); err != nil {
			return err
		}
	}

	// Roadmap and whitepaper sync from the live site.
	p.updateChannelContent(s, "roadmap", p.scraper.RoadmapEmbed(ctx),
		"🇬🇧 Official project milestones & development timeline | 🇬🇷 Επίσημοι στόχοι έργου & χρονοδιάγραμμα | 🇪🇸 Hitos oficiales del proyecto")
	p.updateChannelContent(s, "whitepaper", p.scraper.WhitepaperEmbed(ctx),
		"🇬🇧 Complete technical documentation & vision | 🇬🇷 Πλήρης τεχνική τεκμηρίωση & όραμα | 🇪🇸 Documentación técnica completa y visión")

	statsEmbed := &discordgo.MessageEmbed{
		Title: "📊 Network Statistics / Στατιστικά / Статистика / 統計",
		Color: 0x3498db,
		Description: "🇬🇧 **Live Dashboard**: Monitor the pulse of the Thronos Network in real-time.\n" +
			"🇬🇷 **Ζωντανός Πίνακας**: Παρακολουθήστε τον παλμό του δικτύου σε πραγματικό χρόνο.\n" +
			"🇪🇸 **Panel en Vivo**: Monitorea el pulso de la red en tiempo real.\n" +
			"🇷🇺 **Живая Статистика**: Следите за пульсом сети в реальном времени.\n" +
			"🇯🇵 **ライブ統計**: リアルタイムでThronosネットワークの脈動を監視します。",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🔗 Link / Σύνδεσμος / Ссылка / リンク", Value: fmt.Sprintf("[thronos.network](%s)", p.scraper.SiteURL())},
		},
	}
	p.updateChannelContent(s, "network-stats", statsEmbed,
		"🇬🇧 Monitor network in real-time | 🇬🇷 Παρακολουθήστε το δίκτυο σε πραγματικό χρόνο | 🇪🇸 Monitorea la red en tiempo real")

	for channelName, content := range unifiedContent {
		p.updateChannelContent(s, channelName, p.unifiedEmbed(content), unifiedTopic(content))
	}

	return nil
}

func (p *Provisioner) unifiedEmbed(content channelContent) *discordgo.MessageEmbed {
	url := p.scraper.SiteURL() + content.Path
	embed := &discordgo.MessageEmbed{
		Title: content.Title,
		URL:   url,
		Color: 0x9b59b6,
	}
	for idx, flag := range languageFlags {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  flag,
			Value: content.Descriptions[idx],
		})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "🔗 Link",
		Value: fmt.Sprintf("[Open Page](%s)", url),
	})
	return embed
}

func unifiedTopic(content channelContent) string {
	flags := [5]string{"🇬🇧", "🇬🇷", "🇪🇸", "🇷🇺", "🇯🇵"}
	parts := make([]string, 0, len(flags))
	for idx, flag := range flags {
		desc := []rune(content.Descriptions[idx])
		if len(desc) > 50 {
			desc = desc[:50]
		}
		parts = append(parts, flag+" "+string(desc))
	}
	topic := strings.Join(parts, " | ")
	if len(topic) > 1024 {
		topic = topic[:1021] + "..."
	}
	return topic
}

func (p *Provisioner) ensureCategory(s *discordgo.Session, def categoryDef) error {
	channels, err := s.GuildChannels(p.guildID)
	if err != nil {
		return fmt.Errorf("list channels: %w", err)
	}

	var category *discordgo.Channel
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildCategory && ch.Name == def.Name {
			category = ch
			break
		}
	}
	if category == nil {
		category, err = s.GuildChannelCreateComplex(p.guildID, discordgo.GuildChannelCreateData{
			Name: def.Name,
			Type: discordgo.ChannelTypeGuildCategory,
		})
		if err != nil {
			return fmt.Errorf("create category %s: %w", def.Name, err)
		}
		log.Printf("setup: created category %s", def.Name)
	}

	for _, name := range def.Channels {
		exists := false
		for _, ch := range channels {
			if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == name && ch.ParentID == category.ID {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		_, err := s.GuildChannelCreateComplex(p.guildID, discordgo.GuildChannelCreateData{
			Name:     name,
			Type:     discordgo.ChannelTypeGuildText,
			ParentID: category.ID,
		})
		if err != nil {
			return fmt.Errorf("create channel %s: %w", name, err)
		}
		log.Printf("setup: created channel %s in %s", name, def.Name)
	}

	return nil
}

// updateChannelContent keeps exactly one bot message with the given embed in
// the channel, editing in place when possible.
func (p *Provisioner) updateChannelContent(s *discordgo.Session, channelName string, embed *discordgo.MessageEmbed, topic string) {
	channel := shareddiscord.FindTextChannel(s, p.guildID, channelName)
	if channel == nil {
		return
	}

	if topic != "" && channel.Topic != topic {
		if _, err := s.ChannelEditComplex(channel.ID, &discordgo.ChannelEdit{Topic: topic}); err != nil {
			log.Printf("setup: edit topic of %s: %v", channelName, err)
		}
	}

	messages, err := s.ChannelMessages(channel.ID, 10, "", "", "")
	if err != nil {
		log.Printf("setup: list messages in %s: %v", channelName, err)
		return
	}

	var botMessages []*discordgo.Message
	for _, msg := range messages {
		if msg.Author != nil && msg.Author.ID == s.State.User.ID {
			botMessages = append(botMessages, msg)
		}
	}

	switch {
	case len(botMessages) == 1:
		if _, err := s.ChannelMessageEditEmbed(channel.ID, botMessages[0].ID, embed); err != nil {
			log.Printf("setup: edit content in %s: %v", channelName, err)
		}
	default:
		for _, msg := range botMessages {
			if err := s.ChannelMessageDelete(channel.ID, msg.ID); err != nil {
				log.Printf("setup: clear old content in %s: %v", channelName, err)
			}
		}
		if _, err := s.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
			log.Printf("setup: post content in %s: %v", channelName, err)
		}
	}
}
