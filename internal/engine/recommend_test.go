package engine

import (
	"reflect"
	"testing"

	"github.com/julianstephens/miaomotion/internal/models"
)

func TestRecommend(t *testing.T) {
	cool := []models.SportType{models.SportWalk, models.SportJogging, models.SportCycling}
	mild := []models.SportType{models.SportRunning, models.SportHiking, models.SportYoga}
	warm := []models.SportType{models.SportFastWalk, models.SportNightRun, models.SportStretch}
	none := []models.SportType{}

	tests := []struct {
		temp float64
		want []models.SportType
	}{
		{-10, none},
		{3, none},
		{4.99, none},
		{5, cool},
		{14.9, cool},
		{15, mild},
		{20, mild},
		{24.99, mild},
		{25, warm},
		{30, warm},
		{30.01, none},
		{38, none},
	}
	for _, tt := range tests {
		if got := Recommend(tt.temp); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Recommend(%v) = %v, want %v", tt.temp, got, tt.want)
		}
	}
}
