package validators

import "go.mongodb.org/mongo-driver/bson"

var CabinValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"capacity",
			"price",
			"is_active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  50,
			},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"amenities": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"image": bson.M{
				"bsonType": "string",
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
