package uitests

func DoTreeTests(t *T) {
	t.Scenario("tree query", func(t *T) {
		t.NewFile()
		t.TypeKeys(sampleJSON)
		result := t.Query("s_mul(z, int(@[3].b * 3))")
		t.CheckText(`"zzzzzzzzzz"`, result)
	})

	t.Scenario("JSON to CSV", func(t *T) {
		t.NewFile()
		t.Write(`[{"a": 1, "b": "y"}, {"a": 3, "b": "z"}]`)
		t.JSONToCSV()
		text := t.Contents()
		t.Pause(t.Delays().QueryStep)
		t.CheckText("a,b\n1,y\n3,z\n", text)
		// the CSV is in a tab of its own
		t.EmptyAndClose()
	})
}
