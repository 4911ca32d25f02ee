package scenes

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"strings"
	"unicode"

	"github.com/decker502/softkeyboard/pkg/components"
	"github.com/decker502/softkeyboard/pkg/config"
	"github.com/decker502/softkeyboard/pkg/entities"
	"github.com/decker502/softkeyboard/pkg/game"
	"github.com/decker502/softkeyboard/pkg/systems"
	"github.com/decker502/softkeyboard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 默认布局 ID
const (
	DefaultSymbolSkbID = 2
)

var (
	sceneBackground = color.RGBA{R: 24, G: 24, B: 30, A: 255}
	bufferColor     = color.RGBA{R: 230, G: 230, B: 235, A: 255}
	historyColor    = color.RGBA{R: 130, G: 130, B: 140, A: 255}
)

// SettingsSaver 退出时保存设置
type SettingsSaver interface {
	Save() error
}

// SkbContainerConfig 软键盘容器场景配置
type SkbContainerConfig struct {
	ScreenWidth  int
	ScreenHeight int

	// Layouts 可用布局，第一个为基础（字母）布局
	Layouts []*components.SoftKeyboard
	// SymbolSkbID SYMBOL 键切换到的布局，0 使用 DefaultSymbolSkbID
	SymbolSkbID int

	Environment *config.Environment
	Fonts       *game.FontCache

	Sound    systems.KeySoundPlayer
	Vibrator systems.Vibrator
	Settings systems.FeedbackSettings
	Saver    SettingsSaver

	// Watcher 布局热加载，可为 nil
	Watcher *config.LayoutWatcher

	// Dim 启动时让主键盘变暗
	Dim bool
	// MaxTextLength 输入缓冲区最大长度，0 表示不限制
	MaxTextLength int
}

// viewLayer 单个软键盘视图的离屏缓存
//
// 视图通过 Invalidator 通知重绘，缓存在下一次 Draw 时整体重画。
type viewLayer struct {
	view   *systems.SoftKeyboardView
	origin image.Point // 视图左上角的屏幕坐标
	image  *ebiten.Image
	dirty  bool
}

// Invalidate 标记需要重绘
func (l *viewLayer) Invalidate(image.Rectangle) { l.dirty = true }

// InvalidateAll 标记需要重绘
func (l *viewLayer) InvalidateAll() { l.dirty = true }

// bounds 视图在屏幕上的矩形
func (l *viewLayer) bounds() image.Rectangle {
	w, h := l.view.Measure()
	return image.Rect(l.origin.X, l.origin.Y, l.origin.X+w, l.origin.Y+h)
}

// local 屏幕坐标转换为视图坐标
func (l *viewLayer) local(x, y int) (int, int) {
	return x - l.origin.X, y - l.origin.Y
}

func (l *viewLayer) draw(screen *ebiten.Image, fonts *game.FontCache) {
	w, h := l.view.Measure()
	if w <= 0 || h <= 0 {
		return
	}
	if l.image == nil || l.image.Bounds().Dx() != w || l.image.Bounds().Dy() != h {
		if l.image != nil {
			l.image.Deallocate()
		}
		l.image = ebiten.NewImage(w, h)
		l.dirty = true
	}
	if l.dirty {
		l.image.Clear()
		l.view.Draw(systems.NewEbitenCanvas(l.image, fonts))
		l.dirty = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(l.origin.X), float64(l.origin.Y))
	screen.DrawImage(l.image, op)
}

// SkbContainerScene 软键盘容器场景
//
// 把指针事件分发给主键盘或长按弹出的小键盘，处理按键提交、长按重复、
// 布局切换、布局热加载和失去焦点。主键盘贴在屏幕底部并铺满屏幕宽度。
type SkbContainerScene struct {
	screenWidth  int
	screenHeight int

	env       *config.Environment
	fonts     *game.FontCache
	scheduler *utils.Scheduler
	pointer   *utils.PointerTracker
	longPress *systems.LongPressTimer
	watcher   *config.LayoutWatcher
	saver     SettingsSaver

	onKeyBalloon *systems.BalloonHint
	popupBalloon *systems.BalloonHint

	main  *viewLayer
	popup *viewLayer

	layouts     map[int]*components.SoftKeyboard
	baseSkbID   int
	symbolSkbID int

	buffer *TextBuffer

	active              *viewLayer // 接收当前手势的视图，nil 表示没有手势
	discardUntilRelease bool       // 丢弃事件直到释放
	longPressed         bool       // 本次按下已触发长按
	popupShowing        bool
	shifted             bool
	visible             bool
	dim                 bool

	isFocused func() bool
	focused   bool
}

// NewSkbContainerScene 创建软键盘容器场景
func NewSkbContainerScene(cfg SkbContainerConfig) (*SkbContainerScene, error) {
	if len(cfg.Layouts) == 0 {
		return nil, fmt.Errorf("no soft keyboard layouts")
	}
	if cfg.ScreenWidth <= 0 || cfg.ScreenHeight <= 0 {
		return nil, fmt.Errorf("invalid screen size %dx%d", cfg.ScreenWidth, cfg.ScreenHeight)
	}

	env := cfg.Environment
	if env == nil {
		env = config.NewEnvironment(config.DefaultEnvironmentRatios(), cfg.ScreenWidth, cfg.ScreenHeight)
	}
	symbolID := cfg.SymbolSkbID
	if symbolID == 0 {
		symbolID = DefaultSymbolSkbID
	}

	s := &SkbContainerScene{
		screenWidth:  cfg.ScreenWidth,
		screenHeight: cfg.ScreenHeight,
		env:          env,
		fonts:        cfg.Fonts,
		scheduler:    utils.NewScheduler(),
		pointer:      utils.NewPointerTracker(),
		watcher:      cfg.Watcher,
		saver:        cfg.Saver,
		layouts:      make(map[int]*components.SoftKeyboard, len(cfg.Layouts)),
		baseSkbID:    cfg.Layouts[0].SkbID,
		symbolSkbID:  symbolID,
		buffer:       NewTextBuffer(cfg.MaxTextLength),
		visible:      true,
		dim:          cfg.Dim,
		isFocused:    ebiten.IsFocused,
		focused:      true,
	}
	for _, skb := range cfg.Layouts {
		s.layouts[skb.SkbID] = skb
	}

	s.longPress = systems.NewLongPressTimer(s.scheduler, s.onLongPress)
	s.onKeyBalloon = systems.NewBalloonHint(s.scheduler, cfg.Fonts)
	s.popupBalloon = systems.NewBalloonHint(s.scheduler, cfg.Fonts)

	s.main = s.newViewLayer(cfg)
	s.popup = s.newViewLayer(cfg)

	s.setMainLayout(cfg.Layouts[0])
	s.main.view.DimSoftKeyboard(s.dim)

	log.Printf("[SkbContainerScene] Created with %d layouts (base=%d, symbol=%d), screen %dx%d",
		len(s.layouts), s.baseSkbID, s.symbolSkbID, s.screenWidth, s.screenHeight)
	return s, nil
}

func (s *SkbContainerScene) newViewLayer(cfg SkbContainerConfig) *viewLayer {
	layer := &viewLayer{dirty: true}
	feedback := systems.NewKeyFeedback(cfg.Sound, cfg.Vibrator, cfg.Settings, s.env)
	layer.view = systems.NewSoftKeyboardView(feedback, layer)
	layer.view.SetBalloonHint(s.onKeyBalloon, s.popupBalloon, false)
	return layer
}

// Update 每帧更新：读取指针输入并推进计时
func (s *SkbContainerScene) Update(deltaTime float64) {
	// F2 切换主键盘变暗
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		s.dim = !s.dim
		if !s.popupShowing {
			s.main.view.DimSoftKeyboard(s.dim)
		}
	}

	s.step(s.pointer.Poll(), deltaTime)
}

// step 处理一帧的事件
func (s *SkbContainerScene) step(events []utils.PointerEvent, deltaTime float64) {
	s.drainLayoutUpdates()

	if !s.isFocused() {
		if s.focused {
			log.Printf("[SkbContainerScene] Focus lost, resetting key press")
			s.focused = false
			s.resetGesture()
			s.closePopup()
		}
		events = nil
	} else {
		s.focused = true
	}

	for _, ev := range events {
		s.HandlePointer(ev)
	}
	s.scheduler.Update(deltaTime)
}

// drainLayoutUpdates 应用热加载的布局，不阻塞
func (s *SkbContainerScene) drainLayoutUpdates() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-s.watcher.Updates():
			if !ok {
				s.watcher = nil
				return
			}
			if err := s.ApplyLayoutConfig(cfg); err != nil {
				log.Printf("[SkbContainerScene] Warning: hot reload rejected: %v", err)
			}
		default:
			return
		}
	}
}

// HandlePointer 处理一个屏幕坐标的指针事件
func (s *SkbContainerScene) HandlePointer(ev utils.PointerEvent) {
	switch ev.Kind {
	case utils.PointerPress:
		s.handlePress(ev.X, ev.Y)
	case utils.PointerMove:
		if s.discardUntilRelease || s.active == nil {
			return
		}
		s.active.view.OnKeyMove(s.active.local(ev.X, ev.Y))
	case utils.PointerRelease:
		s.handleRelease(ev.X, ev.Y)
	}
}

func (s *SkbContainerScene) handlePress(x, y int) {
	s.discardUntilRelease = false
	s.longPressed = false
	s.active = nil

	// 隐藏时点击任意位置重新显示键盘
	if !s.visible {
		s.visible = true
		s.main.InvalidateAll()
		s.discardUntilRelease = true
		log.Printf("[SkbContainerScene] Keyboard shown")
		return
	}

	pt := image.Pt(x, y)
	if s.popupShowing {
		// 弹出小键盘之外的点击只关闭小键盘
		if !pt.In(s.popup.bounds()) {
			s.closePopup()
			s.discardUntilRelease = true
			return
		}
		s.active = s.popup
	} else {
		if !pt.In(s.main.bounds()) {
			return
		}
		s.active = s.main
	}

	lx, ly := s.active.local(x, y)
	s.active.view.OnKeyPress(lx, ly, s.longPress)
}

func (s *SkbContainerScene) handleRelease(x, y int) {
	if s.discardUntilRelease {
		s.discardUntilRelease = false
		return
	}
	layer := s.active
	s.active = nil
	if layer == nil {
		return
	}

	key := layer.view.OnKeyRelease(layer.local(x, y))
	s.longPress.RemoveTimer()
	if key == nil || s.longPressed {
		return
	}

	s.commit(key)
	if layer == s.popup {
		s.closePopup()
	}
}

// onLongPress 长按计时触发
// 可重复按键重复提交；带弹出布局的按键显示弹出小键盘
func (s *SkbContainerScene) onLongPress(repeatCount int) bool {
	if s.active == nil || !s.active.view.IsKeyPressed() {
		return false
	}
	key := s.active.view.KeyDown()
	if key == nil {
		return false
	}

	if key.Repeatable() {
		s.longPressed = true
		s.commit(key)
		return true
	}

	if key.SupportsLongPressPopup() && s.active == s.main && repeatCount == 1 {
		if s.showPopup(key) {
			s.longPressed = true
		}
	}
	return false
}

// showPopup 在按键上方显示弹出小键盘
func (s *SkbContainerScene) showPopup(key *components.SoftKey) bool {
	skb := s.layouts[key.PopupSkbID]
	if skb == nil {
		log.Printf("[SkbContainerScene] Warning: popup skb %d not found for key %q", key.PopupSkbID, key.Label)
		return false
	}

	// 弹出小键盘使用设计尺寸，超出屏幕宽度时等比缩小
	dw, dh := skb.DesignSize()
	w, h := int(math.Round(dw)), int(math.Round(dh))
	if w > s.screenWidth && dw > 0 {
		w = s.screenWidth
		h = int(math.Round(dh * float64(s.screenWidth) / dw))
	}
	s.popup.view.SetSoftKeyboard(skb)
	s.popup.view.ResizeKeyboard(w, h)

	keyCenterX := s.main.origin.X + (key.Left+key.Right)/2
	x := clampInt(keyCenterX-w/2, 0, s.screenWidth-w)
	y := clampInt(s.main.origin.Y+key.Top-h, 0, s.screenHeight-h)
	s.popup.origin = image.Pt(x, y)
	s.popup.view.SetOffsetToSkbContainer(s.popup.origin)
	s.popup.InvalidateAll()

	s.main.view.ResetKeyPress(0)
	s.main.view.DimSoftKeyboard(true)
	s.popupShowing = true
	s.discardUntilRelease = true
	s.active = nil

	log.Printf("[SkbContainerScene] Popup skb %d shown at (%d, %d) for key %q", skb.SkbID, x, y, key.Label)
	return true
}

// closePopup 关闭弹出小键盘，未显示时什么也不做
func (s *SkbContainerScene) closePopup() {
	if !s.popupShowing {
		return
	}
	s.popup.view.ResetKeyPress(0)
	s.popupShowing = false
	if s.active == s.popup {
		s.active = nil
	}
	s.main.view.DimSoftKeyboard(s.dim)
	log.Printf("[SkbContainerScene] Popup closed")
}

// resetGesture 撤销当前手势
func (s *SkbContainerScene) resetGesture() {
	if s.active != nil {
		s.active.view.ResetKeyPress(0)
	}
	s.longPress.RemoveTimer()
	s.pointer.Reset()
	s.active = nil
	s.discardUntilRelease = false
}

// commit 响应按键
func (s *SkbContainerScene) commit(key *components.SoftKey) {
	switch key.KeyCode {
	case components.KeyCodeNone:
		return
	case components.KeyCodeShift:
		s.shifted = !s.shifted
		s.applyShiftLabels(s.main.view.SoftKeyboard())
		s.main.InvalidateAll()
	case components.KeyCodeDelete:
		s.buffer.DeleteBefore()
	case components.KeyCodeEnter:
		line := s.buffer.Commit()
		log.Printf("[SkbContainerScene] Line committed: %q", line)
	case components.KeyCodeSymbol:
		s.switchLayout(s.symbolSkbID)
	case components.KeyCodeAlphabet:
		s.switchLayout(s.baseSkbID)
	case components.KeyCodeHideInput:
		s.hide()
	default:
		if key.KeyCode <= 0 {
			return
		}
		r := rune(key.KeyCode)
		if s.shifted {
			r = unicode.ToUpper(r)
		}
		if !s.buffer.Insert(r) {
			log.Printf("[SkbContainerScene] Insert %q rejected (len=%d)", r, s.buffer.Len())
		}
	}
}

// switchLayout 切换主键盘布局
func (s *SkbContainerScene) switchLayout(id int) {
	skb := s.layouts[id]
	if skb == nil {
		log.Printf("[SkbContainerScene] Warning: skb %d not found", id)
		return
	}
	s.closePopup()
	s.setMainLayout(skb)
	log.Printf("[SkbContainerScene] Switched to skb %d (%s)", skb.SkbID, skb.Name)
}

// setMainLayout 设置主键盘布局，宽度铺满屏幕，高度按设计比例缩放
func (s *SkbContainerScene) setMainLayout(skb *components.SoftKeyboard) {
	s.longPress.RemoveTimer()
	if s.active == s.main {
		s.active = nil
	}

	s.applyShiftLabels(skb)
	s.main.view.SetSoftKeyboard(skb)

	dw, dh := skb.DesignSize()
	w, h := s.screenWidth, int(math.Round(dh))
	if dw > 0 {
		h = int(math.Round(dh * float64(s.screenWidth) / dw))
	}
	s.main.view.ResizeKeyboard(w, h)

	_, mh := s.main.view.Measure()
	s.main.origin = image.Pt(0, s.screenHeight-mh)
	s.main.view.SetOffsetToSkbContainer(s.main.origin)
}

// applyShiftLabels 按 Shift 状态切换字母键的大小写
func (s *SkbContainerScene) applyShiftLabels(skb *components.SoftKeyboard) {
	if skb == nil {
		return
	}
	for _, key := range skb.AllKeys() {
		if key.KeyCode <= 0 || !unicode.IsLetter(rune(key.KeyCode)) {
			continue
		}
		lower := string(unicode.ToLower(rune(key.KeyCode)))
		if !strings.EqualFold(key.Label, lower) {
			// 自定义标签不跟随大小写
			continue
		}
		if s.shifted {
			key.Label = strings.ToUpper(lower)
		} else {
			key.Label = lower
		}
	}
}

// hide 隐藏键盘
func (s *SkbContainerScene) hide() {
	s.closePopup()
	s.main.view.ResetKeyPress(0)
	s.longPress.RemoveTimer()
	s.visible = false
	log.Printf("[SkbContainerScene] Keyboard hidden")
}

// ApplyLayoutConfig 用新配置替换同 ID 的布局
//
// 当前显示的布局被整体替换；显示中的弹出小键盘被关闭。
func (s *SkbContainerScene) ApplyLayoutConfig(cfg *config.SkbLayoutConfig) error {
	if cfg == nil {
		return fmt.Errorf("nil layout config")
	}
	skb, err := entities.NewSoftKeyboard(cfg)
	if err != nil {
		return fmt.Errorf("failed to build skb %d: %w", cfg.ID, err)
	}

	s.layouts[skb.SkbID] = skb
	if popupSkb := s.popup.view.SoftKeyboard(); s.popupShowing && popupSkb != nil && popupSkb.SkbID == skb.SkbID {
		s.closePopup()
	}
	if cur := s.main.view.SoftKeyboard(); cur != nil && cur.SkbID == skb.SkbID {
		s.resetGesture()
		s.setMainLayout(skb)
	}

	log.Printf("[SkbContainerScene] Layout %d (%s) reloaded", skb.SkbID, skb.Name)
	return nil
}

// Draw 绘制输入缓冲区、键盘和气泡
func (s *SkbContainerScene) Draw(screen *ebiten.Image) {
	screen.Fill(sceneBackground)
	s.drawBuffer(screen)

	if !s.visible {
		return
	}
	s.main.draw(screen, s.fonts)
	if s.popupShowing {
		s.popup.draw(screen, s.fonts)
	}
	s.popupBalloon.Draw(screen)
	s.onKeyBalloon.Draw(screen)
}

// drawBuffer 绘制已提交的历史行和当前行
// 超出屏幕宽度的行自动折行，只保留键盘上方能放下的最后几行
func (s *SkbContainerScene) drawBuffer(screen *ebiten.Image) {
	if s.fonts == nil {
		return
	}
	face := s.fonts.Face(s.env.KeyTextSize(false))
	lineHeight := face.Metrics().HAscent + face.Metrics().HDescent + 4
	margin := 12.0
	maxWidth := float64(s.screenWidth) - 2*margin

	type line struct {
		text string
		clr  color.RGBA
	}
	var lines []line
	for _, h := range s.buffer.History() {
		for _, l := range utils.WrapText(h, face, maxWidth) {
			lines = append(lines, line{l, historyColor})
		}
	}
	runes := []rune(s.buffer.Text())
	current := string(runes[:s.buffer.Cursor()]) + "|" + string(runes[s.buffer.Cursor():])
	for _, l := range utils.WrapText(current, face, maxWidth) {
		lines = append(lines, line{l, bufferColor})
	}

	bottom := float64(s.screenHeight)
	if s.visible {
		bottom = float64(s.main.origin.Y)
	}
	maxLines := int((bottom - 2*margin) / lineHeight)
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}

	y := margin
	for _, l := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(margin, y)
		op.ColorScale.ScaleWithColor(l.clr)
		text.Draw(screen, l.text, face, op)
		y += lineHeight
	}
}

// SaveOnExit 退出时保存设置
func (s *SkbContainerScene) SaveOnExit() bool {
	if s.watcher != nil {
		s.watcher.Stop()
		s.watcher = nil
	}
	if s.saver == nil {
		return true
	}
	if err := s.saver.Save(); err != nil {
		log.Printf("[SkbContainerScene] Warning: failed to save settings: %v", err)
		return false
	}
	return true
}

// Buffer 输入缓冲区
func (s *SkbContainerScene) Buffer() *TextBuffer {
	return s.buffer
}

// IsVisible 键盘是否显示
func (s *SkbContainerScene) IsVisible() bool {
	return s.visible
}

// IsPopupShowing 弹出小键盘是否显示
func (s *SkbContainerScene) IsPopupShowing() bool {
	return s.popupShowing
}

// IsShifted 是否处于大写状态
func (s *SkbContainerScene) IsShifted() bool {
	return s.shifted
}

// CurrentSkbID 主键盘当前布局 ID
func (s *SkbContainerScene) CurrentSkbID() int {
	if skb := s.main.view.SoftKeyboard(); skb != nil {
		return skb.SkbID
	}
	return 0
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
