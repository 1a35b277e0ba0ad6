package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"cabin_id",
			"start_date",
			"end_date",
			"guest_name",
			"guest_email",
			"guest_phone",
			"number_of_guests",
			"total_price",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"cabin_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"start_date": bson.M{
				"bsonType": "date",
			},

			"end_date": bson.M{
				"bsonType": "date",
			},

			"guest_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"guest_email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
			},

			"guest_phone": bson.M{
				"bsonType":  "string",
				"minLength": 7,
				"maxLength": 20,
			},

			"number_of_guests": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  50,
			},

			"special_requests": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"total_price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"PENDING",
					"CONFIRMED",
					"REJECTED",
					"CANCELLED",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
