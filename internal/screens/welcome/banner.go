package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/algebrix/algebrix/internal/ui/theme"
)

const bannerArt = `
  █████╗ ██╗      ██████╗ ███████╗██████╗ ██████╗ ██╗██╗  ██╗
 ██╔══██╗██║     ██╔════╝ ██╔════╝██╔══██╗██╔══██╗██║╚██╗██╔╝
 ███████║██║     ██║  ███╗█████╗  ██████╔╝██████╔╝██║ ╚███╔╝
 ██╔══██║██║     ██║   ██║██╔══╝  ██╔══██╗██╔══██╗██║ ██╔██╗
 ██║  ██║███████╗╚██████╔╝███████╗██████╔╝██║  ██║██║██╔╝ ██╗
 ╚═╝  ╚═╝╚══════╝ ╚═════╝ ╚══════╝╚═════╝ ╚═╝  ╚═╝╚═╝╚═╝  ╚═╝`

const bannerCompact = "A L G E B R I X"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 62

// RenderBanner returns the ALGEBRIX banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
