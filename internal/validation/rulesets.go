package validation

// Per-route rule sets. Messages match the API's documented responses.

var CreateEvent = RuleSet{
	Field("title").
		Required("Title is required.").
		Length(3, 100, "Title must be between 3 and 100 characters."),
	Field("description").
		Required("Description is required.").
		MinLength(10, "Description must be at least 10 characters long."),
	Field("date").
		Required("Date is required.").
		ISODate("Date must be a valid ISO 8601 date format."),
	Field("location").
		Required("Location is required."),
	Field("capacity").
		IntRange(1, maxInt, "Capacity must be a number greater than 0."),
	Field("price").
		FloatMin(0, "Price must be a positive number."),
}

var UpdateEvent = RuleSet{
	Field("title").
		Length(3, 100, "Title must be between 3 and 100 characters."),
	Field("description").
		MinLength(10, "Description must be at least 10 characters long."),
	Field("date").
		ISODate("Date must be a valid ISO 8601 date format."),
	Field("capacity").
		IntRange(1, maxInt, "Capacity must be a number greater than 0."),
	Field("price").
		FloatMin(0, "Price must be a positive number."),
}

var CreateUser = RuleSet{
	Field("fullName").
		Required("Full name is required."),
	Field("email").
		Required("Must be a valid email address.").
		Email("Must be a valid email address."),
	Field("password").
		Required("Password must be at least 6 characters long.").
		MinLength(6, "Password must be at least 6 characters long."),
}

var UpdateUser = RuleSet{
	Field("fullName").
		MinLength(1, "Full name cannot be empty."),
	Field("email").
		Email("Must be a valid email address."),
	Field("password").
		MinLength(6, "Password must be at least 6 characters long."),
}

var Login = RuleSet{
	Field("email").
		Required("Must be a valid email address.").
		Email("Must be a valid email address."),
	Field("password").
		Required("Password is required."),
}

var CreateRegistration = RuleSet{
	Field("eventId").
		Required("Event ID is required.").
		ObjectID("Event ID must be a valid ID format."),
	Field("userId").
		Required("User ID is required.").
		ObjectID("User ID must be a valid ID format."),
}

var UpdateRegistration = RuleSet{
	Field("eventId").
		ObjectID("Event ID must be a valid ID format."),
	Field("userId").
		ObjectID("User ID must be a valid ID format."),
}

var CreateReview = RuleSet{
	Field("eventId").
		Required("Event ID is required.").
		ObjectID("Event ID must be a valid ID format."),
	Field("userId").
		Required("User ID (creator) is required.").
		ObjectID("User ID must be a valid ID format."),
	Field("rating").
		Required("Rating is required.").
		IntRange(1, 5, "Rating must be an integer between 1 and 5."),
	Field("comment").
		MaxLength(500, "Comment cannot exceed 500 characters."),
}

var UpdateReview = RuleSet{
	Field("rating").
		IntRange(1, 5, "Rating must be an integer between 1 and 5."),
	Field("comment").
		MaxLength(500, "Comment cannot exceed 500 characters."),
}

const maxInt = int(^uint(0) >> 1)
