package route

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLocale 默认语言
const DefaultLocale = "zh-CN"

var titles = map[string]map[language.Tag]string{
	"menus.home":             {language.SimplifiedChinese: "首页", language.English: "Home"},
	"menus.dashboard":        {language.SimplifiedChinese: "仪表盘", language.English: "Dashboard"},
	"menus.player":           {language.SimplifiedChinese: "玩家管理", language.English: "Players"},
	"menus.transfer":         {language.SimplifiedChinese: "转账钱包", language.English: "Transfer Wallet"},
	"menus.single":           {language.SimplifiedChinese: "单一钱包", language.English: "Single Wallet"},
	"menus.game":             {language.SimplifiedChinese: "游戏管理", language.English: "Games"},
	"menus.system":           {language.SimplifiedChinese: "系统管理", language.English: "System"},
	"menus.attachment":       {language.SimplifiedChinese: "附件管理", language.English: "Attachments"},
	"menus.pureLogin":        {language.SimplifiedChinese: "登录", language.English: "Login"},
	"menus.pureAccessDenied": {language.SimplifiedChinese: "拒绝访问", language.English: "Access Denied"},
	"menus.pureServerError":  {language.SimplifiedChinese: "服务端错误", language.English: "Server Error"},
	"status.pureLoad":        {language.SimplifiedChinese: "加载中...", language.English: "Loading..."},
}

var (
	supported = []language.Tag{language.SimplifiedChinese, language.English}
	matcher   = language.NewMatcher(supported)
	builder   = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.SimplifiedChinese))
	for key, byTag := range titles {
		for tag, text := range byTag {
			// 标题不含格式化动词，SetString 失败只可能来自非法 tag
			_ = b.SetString(tag, key, text)
		}
	}
	return b
}

// Translator 标题翻译器
type Translator struct {
	printer *message.Printer
	tag     language.Tag
}

// NewTranslator 按 locale 创建翻译器，无法识别时回退到简体中文
func NewTranslator(locale string) *Translator {
	tag := language.SimplifiedChinese
	if locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			if _, idx, conf := matcher.Match(parsed); conf != language.No {
				tag = supported[idx]
			}
		}
	}
	return &Translator{
		printer: message.NewPrinter(tag, message.Catalog(builder)),
		tag:     tag,
	}
}

// Locale 实际使用的语言
func (t *Translator) Locale() string {
	return t.tag.String()
}

// Title 渲染标题
// 非 menus./status. 前缀的标题按原文返回
func (t *Translator) Title(key string) string {
	if t == nil || !isMessageKey(key) {
		return key
	}
	return t.printer.Sprintf(message.Key(key, key))
}

func isMessageKey(key string) bool {
	return strings.HasPrefix(key, "menus.") || strings.HasPrefix(key, "status.")
}
