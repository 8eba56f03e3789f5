package queries

const QueryCreateRoom = `
INSERT INTO rooms (name, created_by)
VALUES ($1, $2)
RETURNING id, name, created_by, created_at;
`

const QueryListRoomsByUser = `
SELECT id, name, created_by, created_at
FROM rooms
WHERE id IN (SELECT room_id FROM users_rooms WHERE user_id = $1)
ORDER BY created_at DESC, id DESC;
`

const QueryGetRoom = `
SELECT id, name, created_by, created_at
FROM rooms
WHERE id = $1;
`

const QueryListRoomParticipants = `
SELECT id, email, username
FROM users
WHERE id IN (SELECT user_id FROM users_rooms WHERE room_id = $1)
ORDER BY id;
`

const QueryJoinRoom = `
INSERT INTO users_rooms (room_id, user_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING;
`

const QueryCreateMessage = `
INSERT INTO messages (content, room_id, created_by)
VALUES ($1, $2, $3)
RETURNING id, content, room_id, created_by, created_at;
`

const QueryUpdateMessage = `
UPDATE messages SET content = $2
WHERE id = $1
RETURNING id, content, room_id, created_by, created_at;
`

const QueryGetMessage = `
SELECT id, content, room_id, created_by, created_at
FROM messages
WHERE id = $1;
`

const QueryListMessages = `
SELECT id, content, room_id, created_by, created_at
FROM messages
WHERE room_id = $1
ORDER BY id ASC
LIMIT $2 OFFSET $3;
`
