package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name       string
		first      string
		last       string
		father     string
		haircuts   int
		discount   float64
		wantErr    bool
		errContain string
	}{
		{name: "valid", first: "Ivan", last: "Ivanov", father: "Ivanovich", haircuts: 4, discount: 10},
		{name: "valid cyrillic with space", first: "Иван", last: "Ван Дер", father: "Иванович", haircuts: 0, discount: 100},
		{name: "empty first name", first: "  ", last: "Ivanov", father: "Ivanovich", wantErr: true, errContain: "first_name must not be empty"},
		{name: "short last name", first: "Ivan", last: " I ", father: "Ivanovich", wantErr: true, errContain: "at least 2"},
		{name: "digits in father name", first: "Ivan", last: "Ivanov", father: "Iv4n", wantErr: true, errContain: "only letters"},
		{name: "negative haircuts", first: "Ivan", last: "Ivanov", father: "Ivanovich", haircuts: -1, wantErr: true, errContain: "haircut_counter"},
		{name: "discount above range", first: "Ivan", last: "Ivanov", father: "Ivanovich", discount: 100.5, wantErr: true, errContain: "discount"},
		{name: "negative discount", first: "Ivan", last: "Ivanov", father: "Ivanovich", discount: -1, wantErr: true, errContain: "discount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.first, tt.last, tt.father, tt.haircuts, tt.discount)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.last, c.LastName)
			assert.Zero(t, c.ID)
		})
	}
}

func TestClient_Setters(t *testing.T) {
	c, err := NewClient("Ivan", "Ivanov", "Ivanovich", 4, 10)
	require.NoError(t, err)

	assert.NoError(t, c.SetDiscount(15))
	assert.Equal(t, 15.0, c.Discount)
	assert.ErrorIs(t, c.SetDiscount(150), ErrValidation)
	assert.Equal(t, 15.0, c.Discount)

	assert.NoError(t, c.SetHaircutCounter(5))
	assert.Equal(t, 5, c.HaircutCounter)
	assert.ErrorIs(t, c.SetHaircutCounter(-2), ErrValidation)
	assert.Equal(t, 5, c.HaircutCounter)
}

func TestClient_KeyAndEquality(t *testing.T) {
	a, _ := NewClient("Ivan", "Petrov", "Ivanovich", 2, 0)
	b, _ := NewClient("Petr", "Petrov", "Petrovich", 2, 5)

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a, b)

	b2 := a
	assert.True(t, a == b2)
}
