package controller

import "testing"

func TestShiftSequence(t *testing.T) {
	c := New()
	c.SetButton(A, true)
	c.SetButton(Select, true)

	c.Write(1)
	c.Write(0)

	want := []uint8{1, 0, 1, 0, 0, 0, 0, 0, 1, 1, 1}
	for i, w := range want {
		if got := c.Read() & 0x01; got != w {
			t.Errorf("read %d: got bit %d, want %d", i, got, w)
		}
	}
}

func TestStrobeHeldReturnsA(t *testing.T) {
	c := New()
	c.SetButton(A, true)
	c.Write(1)

	for i := 0; i < 5; i++ {
		if got := c.Read() & 0x01; got != 1 {
			t.Errorf("read %d while strobed: got %d, want 1", i, got)
		}
	}
}

func TestOpenBusBitsAlwaysSet(t *testing.T) {
	c := New()
	c.Write(0)
	if got := c.Read(); got&0x40 == 0 {
		t.Errorf("Read() = %#02x, want bit 6 set", got)
	}
}

func TestSetButtonIdempotent(t *testing.T) {
	c := New()
	c.SetButton(Start, true)
	c.SetButton(Start, true)
	c.Write(1)
	if got := c.Read() & 0x01; got != 0 {
		t.Errorf("A bit = %d, want 0 (only Start pressed)", got)
	}
	c.SetButton(Start, false)
	c.SetButton(Start, false)
	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		if got := c.Read() & 0x01; got != 0 {
			t.Errorf("bit %d = %d, want 0 after release", i, got)
		}
	}
}
