package parser

var usages = map[string]string{
	"add": "add: Adds a child to the address book.\n" +
		"Parameters: c/CHILD_NAME b/PARENT_NAME p/PARENT_PHONE e/PARENT_EMAIL a/ADDRESS [r/ALLERGY]... [t/TAG]...\n" +
		"Example: add c/Alex Yeoh b/Sam Yeoh p/98765432 e/sam@example.com a/311, Clementi Ave 2, #02-25 r/peanuts t/twins",
	"edit": "edit: Edits the details of the child identified by the index number used in the displayed list.\n" +
		"Parameters: INDEX [c/CHILD_NAME] [b/PARENT_NAME] [p/PARENT_PHONE] [e/PARENT_EMAIL] [a/ADDRESS] [r/ALLERGY]... [t/TAG]...\n" +
		"Example: edit 1 p/91234567 e/johndoe@example.com",
	"delete": "delete: Deletes the children identified by the index numbers used in the displayed list.\n" +
		"Parameters: INDEX... (must be positive integers)\n" +
		"Example: delete 1 3",
	"enroll": "enroll: Enrolls the children at the specified indexes into the listed subjects, " +
		"or every listed child if 'all' is used.\n" +
		"Parameters: INDEX... or ALL s/SUBJECT...\n" +
		"Example: enroll 1 2 3 s/math or: enroll all s/math s/science",
	"unenroll": "unenroll: Unenrolls the children at the specified indexes from the listed subjects, " +
		"or every listed child if 'all' is used.\n" +
		"Parameters: INDEX... or ALL s/SUBJECT...\n" +
		"Example: unenroll 1 2 s/math or: unenroll all s/english",
	"setscore": "setscore: Sets the score of the children at the specified indexes in one subject.\n" +
		"Parameters: INDEX... or ALL s/SUBJECT g/SCORE\n" +
		"Example: setscore 1 2 3 s/math g/100 or: setscore all s/math g/85",
	"find": "find: Lists the children whose names, allergies or tags match any of the keywords (case-insensitive).\n" +
		"Parameters: [c/CHILD_KEYWORD...] [b/PARENT_KEYWORD...] [r/ALLERGY]... [t/TAG]...\n" +
		"Example: find c/alex b/yeoh r/peanuts",
	"scores": "scores: Shows the scores of the child at the given index.\n" +
		"Parameters: INDEX\n" +
		"Example: scores 1",
	"list":  "list: Lists every child.",
	"clear": "clear: Deletes every child from the address book.",
}

// Usage returns the help text of a command word, or "" if it is unknown.
func Usage(word string) string {
	return usages[word]
}
