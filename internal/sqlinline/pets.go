package sqlinline

const QInsertPet = `--sql 3dbf58f3-81db-4b85-8749-7e1c88fe88dc
insert into pets(id, name, type, breed, description, location, image, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::text, $5::text, $6::text, now())
returning id;
`

const QListPets = `--sql 67bd0d35-815a-4acb-880b-54dc080f77a9
select id, name, type, breed, description, location, image, created_at
from pets
where ($1::text = '' or type = $1::text)
  and ($2::text = '' or location ilike '%' || $2::text || '%')
order by created_at desc;
`

const QSelectPetByID = `--sql c96c267c-a995-4b1a-8a1e-0c2921e2a6ec
select id, name, type, breed, description, location, image, created_at
from pets
where id = $1::uuid
limit 1;
`
