package companion

import (
	"context"
	"strings"

	"github.com/rcliao/companion/internal/model"
)

func (a *App) Settings() model.AppSettings {
	return a.settings.Get()
}

// UpdateSettings applies fn to the app settings and saves them if they stay valid.
func (a *App) UpdateSettings(ctx context.Context, fn func(*model.AppSettings)) (model.AppSettings, error) {
	err := a.settings.Update(ctx, func(s *model.AppSettings) error {
		fn(s)
		if !model.ValidToneStyles[s.ToneStyle] {
			return invalid("unknown tone style %q", s.ToneStyle)
		}
		if s.FontSize <= 0 {
			return invalid("font size must be positive")
		}
		s.Nickname = strings.TrimSpace(s.Nickname)
		s.Occupation = strings.TrimSpace(s.Occupation)
		return nil
	})
	return a.settings.Get(), err
}

func (a *App) Advanced() model.AdvancedSettings {
	return a.advanced.Get()
}

// UpdateAdvanced applies fn to the advanced settings and saves them if the
// generation parameters stay in range.
func (a *App) UpdateAdvanced(ctx context.Context, fn func(*model.AdvancedSettings)) (model.AdvancedSettings, error) {
	err := a.advanced.Update(ctx, func(s *model.AdvancedSettings) error {
		fn(s)
		if err := s.Validate(); err != nil {
			return invalid("%v", err)
		}
		return nil
	})
	return a.advanced.Get(), err
}

// ResetAdvanced restores the factory advanced settings.
func (a *App) ResetAdvanced(ctx context.Context) (model.AdvancedSettings, error) {
	err := a.advanced.Replace(ctx, model.DefaultAdvancedSettings())
	return a.advanced.Get(), err
}
