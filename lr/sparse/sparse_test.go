package sparse

import "testing"

func TestMatrixBasic(t *testing.T) {
	M := NewIntMatrix(10, 10, -1)
	if M.M() != 10 || M.N() != 10 {
		t.Errorf("matrix should be 10 x 10, is %d x %d", M.M(), M.N())
	}
	M.Set(2, 3, 4711)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("value at (2,3) should be 4711, is %d", v)
	}
	if v := M.Value(9, 9); v != -1 {
		t.Errorf("empty position should yield the null-value, is %d", v)
	}
	if M.ValueCount() != 1 {
		t.Errorf("matrix should have 1 occupied position, has %d", M.ValueCount())
	}
}

func TestMatrixPairs(t *testing.T) {
	M := NewIntMatrix(5, 5, DefaultNullValue)
	M.Add(2, 3, 7)
	M.Add(2, 3, 8) // goes into the secondary slot
	if M.ValueCount() != 1 {
		t.Errorf("a pair occupies a single position, count is %d", M.ValueCount())
	}
	a, b := M.Values(2, 3)
	if a != 7 || b != 8 {
		t.Errorf("pair at (2,3) should be (7,8), is (%d,%d)", a, b)
	}
	M.Set(2, 3, 9) // overwrite clears the secondary slot
	a, b = M.Values(2, 3)
	if a != 9 || b != M.NullValue() {
		t.Errorf("pair at (2,3) should be (9,<null>), is (%d,%d)", a, b)
	}
}

func TestMatrixOrdering(t *testing.T) {
	M := NewIntMatrix(100, 100, DefaultNullValue)
	// insert in reverse order to exercise sorted insertion
	for i := 99; i >= 0; i-- {
		M.Set(i, i, int32(i))
	}
	for i := 0; i < 100; i++ {
		if v := M.Value(i, i); v != int32(i) {
			t.Fatalf("value at (%d,%d) should be %d, is %d", i, i, i, v)
		}
	}
	if M.ValueCount() != 100 {
		t.Errorf("matrix should have 100 occupied positions, has %d", M.ValueCount())
	}
}
