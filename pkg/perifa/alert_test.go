package perifa_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/perifanotoque/perifa/pkg/perifa"
)

func TestAlertShowAndAutoClose(t *testing.T) {
	t.Parallel()

	w := newWindow(t)
	opts, _ := quietOptions()
	alerts := perifa.NewAlertSystem(w, opts)
	require.True(t, alerts.Container().HasClass("alert-container"))

	a := alerts.Warning("Atenção", "Verifique os dados", perifa.AlertOptions{})
	require.Equal(t, "alert-1", a.ID)
	require.True(t, a.Element.HasClass("alert-warning"))
	require.True(t, a.Element.Parent().Same(alerts.Container()))
	require.Equal(t, "Verifique os dados", a.Element.QuerySelector(".alert-message").TextContent())

	w.Advance(5*time.Second - time.Millisecond)
	require.False(t, a.Closed())
	w.Advance(time.Millisecond)
	require.True(t, a.Element.HasClass("hiding"))

	w.Advance(300 * time.Millisecond)
	require.False(t, a.Element.Connected())
}

func TestAlertCloseButton(t *testing.T) {
	t.Parallel()

	w := newWindow(t)
	opts, _ := quietOptions()
	alerts := perifa.NewAlertSystem(w, opts)

	a := alerts.Info("a", "b", perifa.AlertOptions{Persistent: true})
	w.Click(a.Element.QuerySelector(".alert-close"))
	require.True(t, a.Closed())
	w.Advance(300 * time.Millisecond)
	require.False(t, a.Element.Connected())
	require.Equal(t, 0, w.Clock().Pending())

	static := w.Document().GetElementByID("static-alert")
	w.Click(static.QuerySelector(".alert-close"))
	require.True(t, static.HasClass("hiding"))
	w.Advance(300 * time.Millisecond)
	require.Nil(t, w.Document().GetElementByID("static-alert"))
}

func TestAlertPositionAndCloseAll(t *testing.T) {
	t.Parallel()

	w := newWindow(t)
	opts, _ := quietOptions()
	alerts := perifa.NewAlertSystem(w, opts)

	a := alerts.Error("a", "b", perifa.AlertOptions{Position: perifa.AlertCenter, NotClosable: true, Size: perifa.SizeSmall})
	require.True(t, alerts.Container().HasClass("alert-container-center"))
	require.True(t, a.Element.HasClass("alert-no-close"))
	require.True(t, a.Element.HasClass("alert-small"))
	require.Nil(t, a.Element.QuerySelector(".alert-close"))

	alerts.SetPosition(perifa.AlertBottomRight)
	require.True(t, alerts.Container().HasClass("alert-container-bottom"))
	require.Len(t, w.Document().QuerySelectorAll(".alert-container, .alert-container-center, .alert-container-bottom"), 1)

	b := alerts.Success("a", "b", perifa.AlertOptions{})
	alerts.CloseAll()
	require.True(t, b.Closed())
	require.True(t, w.Document().GetElementByID("static-alert").HasClass("hiding"))
}

func TestInlineAlerts(t *testing.T) {
	t.Parallel()

	w := newWindow(t)
	opts, logs := quietOptions()
	inline := perifa.NewInlineAlerts(w, opts)

	box := w.Document().GetElementByID("form-box")
	a := inline.Error(box, "Erro", "Algo deu errado", perifa.AlertOptions{})
	require.NotNil(t, a)
	require.True(t, box.FirstChild().Same(a.Element))
	require.True(t, a.Element.HasClass("alert-inline"))
	require.True(t, a.Element.HasClass("alert-error"))

	w.Advance(10*time.Second - time.Millisecond)
	require.False(t, a.Closed())
	w.Advance(time.Millisecond)
	require.True(t, a.Closed())

	kept := inline.ShowIn("#form-box", perifa.AlertOptions{Type: perifa.TypeInfo, Persistent: true})
	require.NotNil(t, kept)
	w.Advance(time.Minute)
	require.False(t, kept.Closed())

	w.Click(kept.Element.QuerySelector(".alert-close"))
	require.True(t, kept.Closed())

	require.Nil(t, inline.ShowIn("#missing", perifa.AlertOptions{}))
	require.Contains(t, logs.String(), "Container not found for inline alert")
	require.Nil(t, inline.Info(nil, "a", "b", perifa.AlertOptions{}))
}

func TestInlineCloseAllLeavesFloating(t *testing.T) {
	t.Parallel()

	w := newWindow(t)
	opts, _ := quietOptions()
	floating := perifa.NewAlertSystem(w, opts)
	inline := perifa.NewInlineAlerts(w, opts)

	f := floating.Info("a", "b", perifa.AlertOptions{})
	i := inline.Success(w.Document().GetElementByID("form-box"), "a", "b", perifa.AlertOptions{})

	inline.CloseAll()
	require.True(t, i.Closed())
	require.False(t, f.Closed())

	// Both systems see the click; the alert still closes once.
	i2 := inline.Warning(w.Document().GetElementByID("form-box"), "a", "b", perifa.AlertOptions{})
	w.Click(i2.Element.QuerySelector(".alert-close"))
	require.True(t, i2.Closed())
	w.Advance(300 * time.Millisecond)
	require.False(t, i2.Element.Connected())
}
