package monplugin_test

import (
	"fmt"

	"github.com/consol-monitoring/monplugin/pkg/monplugin"
)

func ExampleCheck() {
	check := monplugin.NewCheck(monplugin.WithExitFunc(func(int) {}))

	threshold, err := monplugin.NewThreshold("80", "90")
	if err != nil {
		check.Exit(monplugin.Unknown, err.Error())

		return
	}
	check.SetThreshold(threshold)

	for _, val := range []float64{50, 85} {
		check.AddMessage(check.CheckThreshold(val), fmt.Sprintf("value %.0f", val))
	}

	check.Finish(monplugin.JoinAllWith(", "))
	// Output:
	// WARNING: value 85, value 50
}

func ExampleRange_Check() {
	rng := monplugin.MustRange("@10:20")

	fmt.Println(rng.Check(9), rng.Check(15))
	// Output:
	// false true
}

func ExamplePerformanceMetric_String() {
	metric, _ := monplugin.NewPerformanceMetric("used", 9,
		monplugin.WithUnit("kB"),
		monplugin.WithWarning("15"),
		monplugin.WithCritical("90:"),
		monplugin.WithMin(0),
		monplugin.WithMax(100),
	)

	fmt.Println(metric)
	// Output:
	// 'used'=9.0kB;15;90:;0;100
}
