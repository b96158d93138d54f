package config

// 布局配置常量
// 本文件定义了窗口尺寸和 HUD 元素位置

const (
	// GameWindowWidth 游戏逻辑宽度（像素）
	GameWindowWidth = 1024

	// GameWindowHeight 游戏逻辑高度（像素）
	GameWindowHeight = 640

	// HUDScoreX, HUDScoreY 分数显示位置
	HUDScoreX = 20
	HUDScoreY = 16

	// HUDTimerOffsetX 计时器距右边缘的距离
	HUDTimerOffsetX = 150

	// HUDIndicatorX, HUDIndicatorY 道具状态指示器起始位置
	HUDIndicatorX = 50
	HUDIndicatorY = 100

	// HUDIndicatorSpacing 指示器之间的纵向间距
	HUDIndicatorSpacing = 50
)
