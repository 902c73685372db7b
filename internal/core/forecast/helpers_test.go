package forecast

import "time"

var baseTime = time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC) // Monday

func makeEntry(index int, temp float64, condition string) Entry {
	return Entry{
		Timestamp:            baseTime.Add(time.Duration(index) * 3 * time.Hour),
		Temperature:          temp,
		FeelsLike:            temp - 1,
		TempMin:              temp - 2,
		TempMax:              temp + 2,
		Humidity:             60,
		WindSpeed:            3.5,
		ConditionMain:        condition,
		ConditionDescription: "light " + condition,
	}
}

func makeList(n int) List {
	list := make(List, n)
	for i := range list {
		list[i] = makeEntry(i, float64(i), "Clear")
	}
	return list
}
