package utils

// mobileUIScale 触屏上按钮放大的倍数
const mobileUIScale = 1.5

// UIScale returns the factor applied to on-screen controls.
// Touch devices get larger hit areas.
func UIScale() float64 {
	if IsMobile() {
		return mobileUIScale
	}
	return 1
}
