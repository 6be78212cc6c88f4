package validators

import "go.mongodb.org/mongo-driver/bson"

var PackValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"price",
			"features",
			"isActive",
			"createdAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"features": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"photo": bson.M{
				"bsonType": "string",
			},

			"isActive": bson.M{
				"bsonType": "bool",
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},

			"updatedAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
