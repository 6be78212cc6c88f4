package validators

import "go.mongodb.org/mongo-driver/bson"

var ExtraServiceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
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
