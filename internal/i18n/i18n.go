// Package i18n holds the English and Chinese message tables for user-facing
// output. Messages substitute positional {0}, {1}, ... arguments.
package i18n

import (
	"fmt"
	"strings"
)

// Lang selects a message table.
type Lang string

const (
	EN Lang = "en"
	ZH Lang = "zh"
)

// Parse maps a persisted language preference onto a known Lang, defaulting
// to English.
func Parse(s string) Lang {
	if Lang(s) == ZH {
		return ZH
	}
	return EN
}

// Valid reports whether s names a supported language.
func Valid(s string) bool {
	return Lang(s) == EN || Lang(s) == ZH
}

var messages = map[Lang]map[string]string{
	EN: {
		"current_login":      "Current login",
		"not_logged_in":      "not logged in",
		"invalid_data":       "invalid login data",
		"registered":         "Registered",
		"token":              "Token",
		"account_saved":      "Account '{0}' saved",
		"account_updated":    "Account '{0}' updated",
		"account_loaded":     "Account '{0}' loaded, restart the game to apply",
		"account_deleted":    "Account '{0}' deleted",
		"renamed":            "Renamed to '{0}'",
		"logged_out":         "Logged out, restart the game to apply",
		"token_updated":      "Token refreshed for account '{0}'",
		"no_match":           "No saved account matches the current session ({0})",
		"account_exists":     "Account '{0}' already exists",
		"name_exists":        "Name '{0}' is already taken",
		"registry_not_found": "Game registry data not found, log into the game first",
		"no_token":           "No access token in the current session",
		"invalid_token":      "The current access token is invalid",
		"data_corrupted":     "Account data corrupted, starting with an empty list: {0}",
		"language_set":       "Language set to {0}",
		"no_accounts":        "No saved accounts",
		"confirm_load":       "Load account '{0}' over the current session?",
		"confirm_overwrite":  "Overwrite account '{0}' with the current session?",
		"confirm_delete":     "Delete account '{0}'?",
		"confirm_logout":     "Log out the current session?",
		"confirm_refresh":    "Current session matches account '{0}'. Update its saved token?",
		"aborted":            "Aborted",
	},
	ZH: {
		"current_login":      "当前登录",
		"not_logged_in":      "未登录",
		"invalid_data":       "登录数据无效",
		"registered":         "注册",
		"token":              "令牌",
		"account_saved":      "账号 '{0}' 已保存",
		"account_updated":    "账号 '{0}' 已更新",
		"account_loaded":     "账号 '{0}' 已载入，重启游戏后生效",
		"account_deleted":    "账号 '{0}' 已删除",
		"renamed":            "已重命名为 '{0}'",
		"logged_out":         "已退出登录，重启游戏后生效",
		"token_updated":      "账号 '{0}' 的令牌已刷新",
		"no_match":           "没有保存的账号与当前会话匹配（{0}）",
		"account_exists":     "账号 '{0}' 已存在",
		"name_exists":        "名称 '{0}' 已被占用",
		"registry_not_found": "未找到游戏注册表数据，请先登录游戏",
		"no_token":           "当前会话没有访问令牌",
		"invalid_token":      "当前访问令牌无效",
		"data_corrupted":     "账号数据已损坏，将以空列表启动：{0}",
		"language_set":       "语言已切换为 {0}",
		"no_accounts":        "没有保存的账号",
		"confirm_load":       "用账号 '{0}' 覆盖当前会话？",
		"confirm_overwrite":  "用当前会话覆盖账号 '{0}'？",
		"confirm_delete":     "删除账号 '{0}'？",
		"confirm_logout":     "退出当前登录？",
		"confirm_refresh":    "当前会话匹配账号 '{0}'，更新其保存的令牌？",
		"aborted":            "已取消",
	},
}

// T renders the message for key in the given language, substituting
// positional arguments. Unknown keys render as the key itself so a missing
// entry never hides output.
func T(lang Lang, key string, args ...any) string {
	table, ok := messages[lang]
	if !ok {
		table = messages[EN]
	}
	text, ok := table[key]
	if !ok {
		text = key
	}
	for i, arg := range args {
		text = strings.ReplaceAll(text, fmt.Sprintf("{%d}", i), fmt.Sprint(arg))
	}
	return text
}
