package uitests

const sampleJSON = `[1, 2, "a", {"b": 3.5}]`

func DoFormattingTests(t *T) {
	t.Scenario("compress", func(t *T) {
		t.NewFile()
		t.TypeKeys(sampleJSON)
		t.Compress()
		t.CheckText(`[1,2,"a",{"b":3.5}]`, t.Contents())
	})

	t.Scenario("pretty print", func(t *T) {
		t.NewFile()
		t.TypeKeys(sampleJSON)
		t.PrettyPrint()
		t.CheckText(crlf(`[
    1,
    2,
    "a",
    {
        "b": 3.5
    }
]`), t.Contents())
	})

	t.Scenario("big ints parsed as floats", func(t *T) {
		t.NewFile()
		t.TypeKeys("1111111111111111111111111111111111111111")
		t.Compress()
		t.CheckText("1.11111111111111E+39", t.Contents())
	})
}
