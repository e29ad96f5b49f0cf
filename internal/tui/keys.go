package tui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlC
}

func isBack(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEscape
}

func isUp(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyUp || msg.String() == "k"
}

func isDown(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyDown || msg.String() == "j"
}

func isEnter(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEnter
}

func isNextFocus(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyTab
}

func isPrevFocus(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyShiftTab
}

func isSubmit(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlS
}

func isReset(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlR
}

func isToggleLowStock(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlL
}

func isToggleNoVehicleStock(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlN
}

func isDelete(msg tea.KeyMsg) bool {
	return msg.String() == "d" || msg.Type == tea.KeyDelete
}

func isConfirm(msg tea.KeyMsg) bool {
	return msg.String() == "y" || msg.Type == tea.KeyEnter
}
