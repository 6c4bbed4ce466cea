package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings 用户偏好设置
// 只保存偏好，不保存计时器状态：每次启动都从默认的 25/5 分钟开始
type Settings struct {
	AlertVolume  float64 `yaml:"alertVolume"`  // 提示音音量 0.0 ~ 1.0
	AlertEnabled bool    `yaml:"alertEnabled"` // 提示音开关
	Fullscreen   bool    `yaml:"fullscreen"`   // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return &Settings{
		AlertVolume:  0.8,
		AlertEnabled: true,
		Fullscreen:   false,
	}
}

// SettingsStore 设置持久化后端
// *gdata.Manager 满足此接口
type SettingsStore interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// SettingsManager 设置管理器
// 负责偏好设置的加载、保存和内存管理
type SettingsManager struct {
	store    SettingsStore // 可为 nil（降级模式，仅内存设置）
	settings *Settings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "preferences"
)

// OpenSettingsStore 打开 gdata 存储
// 失败时返回 nil 并记录日志，调用方进入降级模式
func OpenSettingsStore(appName string) SettingsStore {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return nil
	}
	return manager
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - store: 持久化后端，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例，加载失败时使用默认设置
func NewSettingsManager(store SettingsStore) *SettingsManager {
	sm := &SettingsManager{
		store:    store,
		settings: DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从存储加载设置
//
// 如果 store 为 nil 或记录不存在，使用默认设置
//
// 返回：
//   - error: 读取或反序列化失败
func (sm *SettingsManager) Load() error {
	if sm.store == nil || !sm.store.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，旧版本缺失的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.AlertVolume = clampVolume(loaded.AlertVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded (volume=%.2f, enabled=%v)", loaded.AlertVolume, loaded.AlertEnabled)
	return nil
}

// Save 保存设置
//
// store 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.store == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *Settings {
	return sm.settings
}

// SetAlertVolume 设置提示音音量，限制在 0.0 ~ 1.0
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetAlertVolume(volume float64) {
	sm.settings.AlertVolume = clampVolume(volume)
}

// SetAlertEnabled 设置提示音开关
func (sm *SettingsManager) SetAlertEnabled(enabled bool) {
	sm.settings.AlertEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
