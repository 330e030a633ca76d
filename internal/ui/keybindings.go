package ui

import tea "github.com/charmbracelet/bubbletea"

// --- Key Constants ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+c")
}

func isUp(msg tea.KeyMsg) bool {
	return isKey(msg, "up")
}

func isDown(msg tea.KeyMsg) bool {
	return isKey(msg, "down")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter", "return")
}

func isTab(msg tea.KeyMsg) bool {
	return isKey(msg, "tab")
}

func isShiftTab(msg tea.KeyMsg) bool {
	return isKey(msg, "shift+tab")
}

func isBackspace(msg tea.KeyMsg) bool {
	return isKey(msg, "backspace", "delete")
}

func isIndent(msg tea.KeyMsg) bool {
	return isKey(msg, "alt+right")
}

func isOutdent(msg tea.KeyMsg) bool {
	return isKey(msg, "alt+left")
}
