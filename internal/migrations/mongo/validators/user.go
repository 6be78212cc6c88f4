package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"username",
			"password",
			"role",
			"isActive",
			"createdAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"username": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 50,
			},

			"password": bson.M{
				"bsonType": "string",
			},

			"fullName": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"role": bson.M{
				"bsonType": "string",
				"enum": []string{
					"admin",
					"employee",
				},
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
