package ui

import "testing"

func TestPanelLayout(t *testing.T) {
	p := NewPanel(10, 10, 200, "Stats")
	p.AddRow("FPS", func() string { return "60" })
	p.AddRow("Links", func() string { return "12" })
	cb := NewCheckbox("Grid", false, nil)
	btn := NewButton("Reshuffle", nil)
	p.AddWidget(cb)
	p.AddWidget(btn)

	rowsEnd := 10 + titleHeight + 2*lineHeight + padding
	if cb.Y != rowsEnd || cb.X != 10+padding {
		t.Errorf("checkbox at %v,%v; want %v,%v", cb.X, cb.Y, 10+padding, rowsEnd)
	}
	if btn.Y != rowsEnd+cb.Size+padding/2 {
		t.Errorf("button y = %v", btn.Y)
	}
	if btn.Width != 200-2*padding {
		t.Errorf("button width = %v", btn.Width)
	}
	if want := btn.Y + btn.H + padding/2 + padding/2 - 10; p.Height() != want {
		t.Errorf("Height = %v; want %v", p.Height(), want)
	}
	if !p.Contains(15, 15) || p.Contains(5, 15) || p.Contains(15, 10+p.Height()+1) {
		t.Error("Contains is wrong")
	}
}

func TestCheckboxTogglesOncePerPress(t *testing.T) {
	var changes []bool
	cb := NewCheckbox("Grid", false, func(v bool) { changes = append(changes, v) })
	cb.place(0, 0, 100)

	cb.Update(5, 5, true)
	cb.Update(5, 5, true) // still held
	cb.Update(5, 5, false)
	cb.Update(50, 50, true) // outside
	cb.Update(50, 50, false)
	cb.Update(7, 7, true)

	if len(changes) != 2 || changes[0] != true || changes[1] != false {
		t.Errorf("changes = %v; want [true false]", changes)
	}
	if cb.Value {
		t.Error("Value should be back to false")
	}
}

func TestButtonClick(t *testing.T) {
	clicks := 0
	b := NewButton("Go", func() { clicks++ })
	b.place(10, 10, 80)

	tests := []struct {
		mx, my  int
		pressed bool
		want    int
	}{
		{0, 0, true, 0},   // outside
		{0, 0, false, 0},  // release
		{20, 20, true, 1}, // press inside
		{20, 20, true, 1}, // held
		{20, 20, false, 1},
		{89, 29, true, 2}, // bottom right corner
	}
	for i, tt := range tests {
		b.Update(tt.mx, tt.my, tt.pressed)
		if clicks != tt.want {
			t.Errorf("step %d: clicks = %d; want %d", i, clicks, tt.want)
		}
	}
}
